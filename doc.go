// Package jsonxf pretty-prints and minifies JSON in a single streaming pass.
//
// The formatter never builds a tree. It tracks a stack of open containers
// and whether it is inside a string, drops all whitespace outside strings and
// synthesizes new whitespace from Options. String contents, numbers and
// literals are copied byte for byte, so the transform is fast, idempotent and
// tolerant of near-valid input: a stray closing bracket never drives the
// depth below zero and input that ends inside a string is flushed as is
// unless Options.Strict is set.
//
// Whole documents:
//
//	out, err := jsonxf.PrettyPrint([]byte(`{"a":[1,2]}`), "\t")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(string(out))
//
// Streaming:
//
//	opts := jsonxf.MinifyOptions()
//	if err := jsonxf.Transform(os.Stdout, os.Stdin, &opts); err != nil {
//		log.Fatal(err)
//	}
//
// Incremental feeding, one chunk at a time:
//
//	f, _ := jsonxf.NewFormatter(nil)
//	var out []byte
//	for _, chunk := range chunks {
//		out, _ = f.Append(out, chunk)
//	}
//	out, _ = f.AppendFinish(out)
//
// Concatenated documents are separated by Options.RecordSeparator, which
// makes newline-delimited JSON a natural output of either mode.
package jsonxf
