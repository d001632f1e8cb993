// Package schema loads declarative form documents and turns them into field
// descriptors ready for validator construction.
//
// A document names the form and lists its fields; each field carries a name,
// a presentation type, an optional default and a rule list. Rules come in two
// shapes: a bare kind string for parameterless checks, or an object with
// kind, param, field and message keys. Both normalize to the same canonical
// rules.Rule before the descriptors leave this package.
//
//	form: signup
//	fields:
//	  - name: email
//	    type: email
//	    required: true
//	    default: ""
//	    rules:
//	      - email
//	  - name: password
//	    type: password
//	    rules:
//	      - required
//	      - kind: minLength
//	        param: 8
//	  - name: confirm
//	    type: password
//	    rules:
//	      - kind: match
//	        field: password
//
// The same document structure is accepted as JSON through ParseJSON, and
// LoadFile picks the parser from the file extension. Documents are parsed at
// runtime only; nothing is generated from them.
//
// Rule kinds are not checked here: evaluation treats unknown kinds as
// passing, and strict construction is the validator's opt-in. Custom rules cannot be
// expressed in documents because predicates are code; declare the field in
// the document and attach the custom rule when building the form.
package schema
