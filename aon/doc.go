// Package aon implements AON, a compact schema-deduplicated text notation
// for JSON-like documents.
//
// AON is designed to be:
//   - Compact (field names are written once per schema, not once per row)
//   - Schema-inferred (record shapes are discovered from the data itself)
//   - Positional (each row is encoded against its schema in field order)
//   - Round-trippable to JSON for the shapes it supports
//
// # Document Layout
//
//	!aon
//	count:2
//	schemas:{
//	  users:(id:number,name:string,profile:profile)
//	  profile:(age:number,addresses:list<addresses>)
//	  addresses:(zip:string,street:string)
//	}
//	data:
//	1,"Alice",(30,[(06114020,"Rua das Dores") ; (06114021,"Rua Azul")])
//	2,"Bob",(41,[])
//	end
//
// # Field Types
//
//	null | boolean | number | string   primitives
//	<name>                             reference to another schema
//	list<T>                            list of T
//
// # Row Syntax
//
// Fields are joined with ',', nested records are wrapped in '(...)', list
// elements are joined with ' ; ' inside '[...]', and null is written as '_'.
// Strings made only of ASCII digits are written bare so that values such as
// postal codes keep their leading zeros; every other string is quoted.
//
// # Schema Identity
//
// A nested schema is named after the field that holds it. Two differently
// shaped objects reached through fields with the same name share one schema
// entry and the later one wins, unless QualifyCollisions is set.
package aon
