package lang

// Per-language denylists of standard-library and runtime built-in calls.
// Calls to these names are dropped at the adapter boundary so they never
// surface as spurious external nodes in the graph.

var cppBuiltins = newNameSet(
	"printf", "fprintf", "sprintf", "snprintf", "scanf", "sscanf", "fscanf",
	"malloc", "calloc", "realloc", "free",
	"memcpy", "memmove", "memset", "memcmp",
	"strlen", "strcpy", "strncpy", "strcmp", "strncmp", "strcat", "strstr", "strchr",
	"fopen", "fclose", "fread", "fwrite", "fgets", "fputs", "puts", "getchar", "putchar",
	"exit", "abort", "atexit", "assert",
	"atoi", "atof", "strtol", "strtod", "rand", "srand", "abs", "labs",
	"qsort", "bsearch",
	"isdigit", "isalpha", "isspace", "toupper", "tolower",
	// common C++ stream/STL entry points that show up as bare calls
	"move", "forward", "swap", "make_shared", "make_unique", "make_pair",
	"size", "begin", "end", "push_back", "emplace_back", "pop_back",
	"insert", "erase", "find", "count", "at", "clear", "empty", "reserve",
	"c_str", "substr", "append", "to_string", "get", "reset", "release", "lock", "unlock",
)

var goBuiltins = newNameSet(
	"append", "cap", "clear", "close", "complex", "copy", "delete", "imag",
	"len", "make", "max", "min", "new", "panic", "print", "println",
	"real", "recover",
)

var pythonBuiltins = newNameSet(
	"print", "len", "range", "enumerate", "zip", "map", "filter", "sorted",
	"reversed", "sum", "min", "max", "abs", "round", "int", "float", "str",
	"bool", "list", "dict", "set", "tuple", "frozenset", "bytes", "bytearray",
	"open", "input", "type", "isinstance", "issubclass", "hasattr", "getattr",
	"setattr", "delattr", "super", "iter", "next", "repr", "format", "hash",
	"id", "vars", "dir", "globals", "locals", "any", "all", "ord", "chr",
	"divmod", "pow", "exec", "eval", "compile",
	// ubiquitous methods that carry no cross-file signal
	"append", "extend", "insert", "remove", "pop", "index", "count", "sort",
	"keys", "values", "items", "get", "update", "add", "join", "split",
	"strip", "lstrip", "rstrip", "replace", "startswith", "endswith", "lower",
	"upper", "read", "write", "close", "encode", "decode",
)

var jsBuiltins = newNameSet(
	"require", "parseInt", "parseFloat", "isNaN", "isFinite", "encodeURIComponent",
	"decodeURIComponent", "setTimeout", "setInterval", "clearTimeout", "clearInterval",
	"fetch", "alert", "confirm", "prompt",
	"log", "warn", "error", "info", "debug", "trace", "assert", "dir", "table",
	"push", "pop", "shift", "unshift", "slice", "splice", "concat", "join",
	"indexOf", "lastIndexOf", "includes", "find", "findIndex", "filter", "map",
	"reduce", "forEach", "some", "every", "sort", "reverse", "flat", "keys",
	"values", "entries", "has", "get", "set", "add", "delete",
	"split", "replace", "trim", "toUpperCase", "toLowerCase", "charAt",
	"charCodeAt", "substring", "substr", "padStart", "padEnd", "startsWith",
	"endsWith", "repeat", "toString", "valueOf", "toFixed", "toJSON",
	"then", "catch", "finally", "resolve", "reject", "all", "race",
	"stringify", "parse", "freeze", "assign", "create", "defineProperty",
	"bind", "call", "apply",
)

// TypeScript shares the JavaScript runtime surface.
var tsBuiltins = jsBuiltins

type nameSet map[string]struct{}

func newNameSet(names ...string) nameSet {
	s := make(nameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s nameSet) contains(name string) bool {
	_, ok := s[name]
	return ok
}
