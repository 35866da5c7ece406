// Package output renders CLI results as a table, JSON or YAML.
//
// Structs and slices of structs become tables with one column per exported
// field, named after its json tag. Values a table cannot show, such as
// redacted payloads, fall back to indented JSON.
package output
