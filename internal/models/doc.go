// Package models defines the data shapes exchanged by the stacksync operations and the run history.
//
// The package contains three categories of types:
//
// 1. Operation inputs: loosely-structured documents decoded from JSON, YAML or TOML
//   - [Design] : Intended architecture (UI components, endpoints, data models, services)
//   - [FrontendImplementation] / [BackendImplementation] : What each side actually built
//
// 2. Operation outputs: fresh values built on every call and never shared
//   - [Task] : One unit of implementation work ([ComponentTask], [ClientServiceTask], [ControllerTask], [ModelTask], [ServiceTask])
//   - [FrontendPlan] / [BackendPlan] : Extracted task lists with tech stack and dependencies
//   - [Finding] : Outcome of comparing one frontend element against its backend counterpart
//   - [Adjustments] : Corrective actions bucketed into frontend, backend and critical
//   - [SyncReport] : Findings plus adjustments
//
// 3. Persistent entities
//   - [Run] : One recorded operation invocation with its input, output and summary counts
//
// [List] and [Object] carry free-form values through unchanged and always serialize
// as [] and {} rather than null.
package models
