// Package samples holds the benchmark payloads: the built-in reference set
// and sample sets loaded from YAML files.
package samples

import "github.com/yoanbernabeu/toonbench/bench"

var reference = []bench.Sample{
	{
		Name: "Simple Object",
		A:    `{"name":"John","age":30,"city":"NYC"}`,
		B:    "name: John\nage: 30\ncity: NYC",
	},
	{
		Name: "Nested Object",
		A:    `{"user":{"name":"John","profile":{"age":30,"city":"NYC"}}}`,
		B:    "user:\n  name: John\n  profile:\n    age: 30\n    city: NYC",
	},
	{
		Name: "Array of Objects",
		A:    `[{"id":1,"name":"A"},{"id":2,"name":"B"},{"id":3,"name":"C"}]`,
		B:    "- id: 1\n  name: A\n- id: 2\n  name: B\n- id: 3\n  name: C",
	},
	{
		Name: "API Response (Users)",
		A:    `{"data":{"users":[{"id":1,"name":"Alice","email":"a@b.com"},{"id":2,"name":"Bob","email":"b@b.com"}]}}`,
		B:    "data:\n  users:\n    - id: 1\n      name: Alice\n      email: a@b.com\n    - id: 2\n      name: Bob\n      email: b@b.com",
	},
	{
		Name: "Config File",
		A:    `{"database":{"host":"localhost","port":5432,"name":"mydb"},"cache":{"enabled":true,"ttl":3600}}`,
		B:    "database:\n  host: localhost\n  port: 5432\n  name: mydb\ncache:\n  enabled: true\n  ttl: 3600",
	},
}

// Default returns a copy of the built-in JSON/TOON reference samples.
func Default() []bench.Sample {
	out := make([]bench.Sample, len(reference))
	copy(out, reference)
	return out
}
