// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini_test

import (
	"fmt"
	"os"

	"github.com/yourbase/inisplice/ini"
)

func ExampleFile_ReadValue() {
	f := ini.New("global = xyzzy\n"+
		"[foo]\n"+
		"bar = baz ; inline comments are allowed\n", nil)

	fmt.Println("Global property:", f.ReadValue("", "global"))
	fmt.Println("Property in section:", f.ReadValue("foo", "bar"))
	fmt.Println("Missing property:", f.ReadValue("foo", "missing", "default"))

	// Output:
	// Global property: xyzzy
	// Property in section: baz
	// Missing property: default
}

// Writes only touch the value being changed, so comments and layout survive.
func ExampleFile_WriteKeyValue() {
	f := ini.New("; Server settings\n"+
		"[server]\n"+
		"    host = example.com   # public name\n", nil)
	f.WriteKeyValue("server", "host", "localhost")
	f.WriteKeyValue("server", "port", "8080")
	f.WriteKeyValue("client", "retries", "3")
	os.Stdout.WriteString(f.Text())

	// Output:
	// ; Server settings
	// [server]
	//     host = localhost   # public name
	// port=8080
	//
	// [client]
	// retries=3
}

// Setting the IgnoreCase comparison allows reading section names and keys
// regardless of their case.
func ExampleOptions_caseInsensitive() {
	f := ini.New("[FOO]\nBar = first\nbar = second\n", &ini.Options{
		Comparison: ini.IgnoreCase,
	})
	fmt.Println(f.ReadValue("foo", "BAR"))
	fmt.Println(f.ReadValuesByKey("Foo", "bar"))

	// Output:
	// first
	// [first second]
}

func ExampleTokenize() {
	const text = "[A]\nx = 1 ; note\n"
	for tok := range ini.Tokenize(text, nil) {
		fmt.Printf("%-10v %q\n", tok.Kind, tok.In(text))
	}

	// Output:
	// section    "[A]"
	// line-break "\n"
	// entry      "x = 1"
	// whitespace " "
	// comment    "; note"
	// line-break "\n"
}
