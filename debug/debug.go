package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Match  bool
	Invoke bool
	Bind   bool
	Reduce bool
	Parse  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Match = boolEnv("SHAPE_DEBUG_MATCH")
	d.Invoke = boolEnv("SHAPE_DEBUG_INVOKE")
	d.Bind = boolEnv("SHAPE_DEBUG_BIND")
	d.Reduce = boolEnv("SHAPE_DEBUG_REDUCE")
	d.Parse = boolEnv("SHAPE_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Match() bool {
	return d.Match
}
func Invoke() bool {
	return d.Invoke
}
func Bind() bool {
	return d.Bind
}
func Reduce() bool {
	return d.Reduce
}
func Parse() bool {
	return d.Parse
}
