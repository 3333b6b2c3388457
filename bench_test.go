package jsonxf

import (
	"bytes"
	"strings"
	"testing"
)

const benchDocString = `{
  "str": "hello \"world\" \\ / \b \f \n \r \t",
  "unicode": "snowman ☃",
  "empty_obj": {},
  "empty_arr": [],
  "int": 123,
  "big": 1234567890,
  "neg": -45,
  "neg_zero": -0,
  "float": 3.14159,
  "exp": 1.23e+4,
  "exp_small": -2.5E-3,
  "bools": [true, false],
  "nil": null,
  "arr": [1, "two", {"three":3}, [4,5]],
  "obj": {"a":1, "b":{"c":[{"d":"e"}]}},
  "json_str_obj": "{\"x\":1,\"y\":[true,false,null],\"z\":{\"k\":\"v\"}}",
  "long": "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."
}`

var benchDocBytes = []byte(benchDocString)
var benchJSONL = buildBenchJSONL()

var benchSink []byte

func buildBenchJSONL() []byte {
	var b strings.Builder
	baseLines := []string{
		`["mixed",1,true,null,{"a":2}]`,
		`"just a string"`,
		`123`,
		`-45`,
		`3.14159`,
		`true`,
		`false`,
		`null`,
	}
	for _, line := range baseLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for i := 0; i < 8; i++ {
		b.WriteString(benchDocString)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func BenchmarkFormat_Pretty(b *testing.B) {
	benchmarkFormat(b, PrettyOptions())
}

func BenchmarkFormat_Minify(b *testing.B) {
	benchmarkFormat(b, MinifyOptions())
}

func BenchmarkFormat_PrettyColored(b *testing.B) {
	opts := PrettyOptions()
	opts.Palette = "jq"
	benchmarkFormat(b, opts)
}

func benchmarkFormat(b *testing.B, opts Options) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchDocBytes)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := Format(benchDocBytes, &opts)
		if err != nil {
			b.Fatal(err)
		}
		benchSink = out
	}
}

func BenchmarkTransform_PrettyJSONL(b *testing.B) {
	benchmarkTransform(b, PrettyOptions())
}

func BenchmarkTransform_MinifyJSONL(b *testing.B) {
	benchmarkTransform(b, MinifyOptions())
}

func benchmarkTransform(b *testing.B, opts Options) {
	var out bytes.Buffer
	reader := bytes.NewReader(benchJSONL)

	warmPools()
	b.ReportAllocs()
	b.SetBytes(int64(len(benchJSONL)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out.Reset()
		reader.Reset(benchJSONL)
		if err := Transform(&out, reader, &opts); err != nil {
			b.Fatal(err)
		}
		benchSink = out.Bytes()
	}
}

func BenchmarkFormatter_Bytewise(b *testing.B) {
	f, err := NewFormatter(nil)
	if err != nil {
		b.Fatal(err)
	}
	out := make([]byte, 0, 4*len(benchDocBytes))

	b.ReportAllocs()
	b.SetBytes(int64(len(benchDocBytes)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Reset()
		out = out[:0]
		for _, c := range benchDocBytes {
			if out, err = f.AppendByte(out, c); err != nil {
				b.Fatal(err)
			}
		}
		if out, err = f.AppendFinish(out); err != nil {
			b.Fatal(err)
		}
	}
	benchSink = out
}
