// Package sdkmock intercepts cloud-SDK client construction and method
// calls, redirecting them to test-supplied replacement behavior without
// modifying calling code.
//
// Test code registers a (service, method, replacement) triple; sdkmock
// swaps the service's constructor so every client constructed afterwards —
// and every client constructed since the first registration — carries a
// stub for each registered method. Application code keeps its three
// calling conventions: trailing callbacks, Promise futures, and
// CreateReadStream byte streams.
//
// # Basic usage
//
//	func TestPublish(t *testing.T) {
//	    sdkmock.SetSDKInstance(fakeAWS())
//	    defer sdkmock.Restore()
//
//	    sdkmock.Mock("SNS", "Publish", map[string]any{"MessageId": "123"})
//
//	    client, _ := root.New("SNS")
//	    client.Call("Publish", sdk.Params{"Message": "hi"}, func(err error, data any) {
//	        // data is {"MessageId": "123"}
//	    })
//	}
//
// Replacements may be literal values, io.Readers, functions in several
// shapes, expr programs, or testify mocks; see package replacement.
//
// # Lifecycle
//
// Restore with no arguments tears down everything; Restore("S3") restores
// one service, constructor included; Restore("S3", "GetObject") removes a
// single method's stubs and leaves the rest of the service mocked.
// Remock replaces a live registration, fully restoring the previous stub
// first so each (service, method, instance) carries at most one.
package sdkmock
