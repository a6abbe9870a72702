// Package script decodes statement description files into builders.
//
// A description file lists statements to render or run. It is written in
// YAML or CUE; both decode to the same File and produce identical SQL.
//
//	statements:
//	  - name: top
//	    kind: select
//	    table: ranking
//	    fields: [rank, user_id]
//	    where:
//	      - {field: user_id, value: 12}
//	      - {join: or, field: step, op: ">=", in: [1, 2]}
//	  - kind: insert
//	    table: ranking
//	    records:
//	      - {user_id: 12, rank: 3}
//	      - {user_id: 13}
//
// Record keys keep their file order; it decides INSERT column order and
// the order of predicates derived from a match record. Table and field
// names are NFC-normalized.
//
// CUE files are unified with an embedded schema (schema.cue) before they
// are decoded, so schema violations carry a file position.
package script
