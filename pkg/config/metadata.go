package config

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Var is one typed configuration variable as seen by the registry
type Var struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Default string `json:"default"`
	Archive bool   `json:"archive"` // written back to the config file
}

// Float parses the value, non-numeric values read as 0
func (v Var) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}

// Int parses the value, truncating fractional input
func (v Var) Int() int {
	if i, err := strconv.Atoi(strings.TrimSpace(v.Value)); err == nil {
		return i
	}
	f := v.Float()
	if math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// Bool reports whether the value is a nonzero number
func (v Var) Bool() bool {
	return v.Int() != 0
}

// Modified reports whether the value differs from its default
func (v Var) Modified() bool {
	return v.Value != v.Default
}

// FormatInt renders an integer the way it is stored
func FormatInt(i int) string {
	return strconv.Itoa(i)
}

// FormatFloat renders a float the way it is stored
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FlattenVars converts a variable list to a name/value map
func FlattenVars(vars []Var) map[string]string {
	result := make(map[string]string, len(vars))
	for _, v := range vars {
		result[v.Name] = v.Value
	}
	return result
}

// SortVars orders variables by name
func SortVars(vars []Var) {
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
}
