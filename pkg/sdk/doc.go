// Package sdk defines the contract between sdkmock and the cloud SDK it
// substitutes for.
//
// A Root is the SDK's entry point: a tree of constructor Slots addressed
// by dot paths ("S3", "DynamoDB.DocumentClient"), a mutable future-factory
// slot governing the Promise projection of every request, and the
// parameter-validation flag. Application code constructs clients through
// Root.New; sdkmock arms interception by swapping the constructor held in
// a Slot and restores it by swapping back — an explicit exchange at a
// known location, never a hidden patch.
//
// A Client carries the per-instance operation table the interception
// engine stubs. Unstubbed calls run through the client's Invoker, the
// real transport supplied at construction.
//
// Operation input schemas are declared per service, either on an API model
// (top-level clients, loadable from YAML or JSON with LoadAPI) or as flat
// per-method schemas (nested helper clients). ValidateParams checks caller
// parameters against a compiled schema with the same JSON Schema engine
// the rest of the getmockd projects use.
//
// SDK implementations register themselves by name with Register, the
// database/sql driver pattern; sdkmock.SetSDK resolves the name through
// Open.
package sdk
