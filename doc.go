// Package itseasy holds the shared error model, defaults and logger of the
// itseasy-util module.
//
// The module provides a reflective model base (package model) that restricts
// which struct fields act as attributes, converts between models and plain
// nested mappings, and resolves dot paths through mixed map/slice/model
// graphs (package pathquery). Value transforms such as date coercion and JSON
// (de)serialization live in package plugin and are invoked explicitly from
// model accessor methods.
//
// Design policy:
// - Keep only shared types in the root package; put detailed implementations under internal/.
// - Attribute discovery under schema/, text codecs under codec/, the CLI under cmd/itseasy.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	type User struct {
//		model.Base
//		ID   int    `json:"id"`
//		Name string `json:"name"`
//	}
//
//	u := &User{}
//	err := model.Populate(u, map[string]any{"id": 1, "name": "Tom"})
//	m, err := model.ToMap(u)
//	name := model.Query(u, "name", "")
package itseasy
