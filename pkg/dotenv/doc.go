// Package dotenv parses line-oriented KEY=VALUE files.
//
// The grammar is deliberately small:
//
//	# full-line comment
//	FOO=bar
//	export THOR = RAGNAROK   # inline comment
//	set NAME="Kevin T"
//
// Comments start at the first '#' and cannot be escaped. A leading "set" or
// "export" keyword is dropped (case-insensitive). Keys keep their case, one
// layer of matching single or double quotes is removed from values, and a
// later assignment replaces an earlier one in place.
//
// [Expand] substitutes $NAME and ${NAME} references; the converter helpers
// ([Bool], [Strings], [Ints], [Floats], [Decimals], [Paths]) turn raw values
// into typed ones.
package dotenv
