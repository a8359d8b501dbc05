package scanner

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// extractVariantSets finds every cva() call under root.
func extractVariantSets(root *ts.Node, source []byte) []VariantSet {
	var sets []VariantSet
	for _, call := range findCVACalls(root, source) {
		set := VariantSet{
			VariableName: assignedName(call, source),
			Variants:     make(map[string][]string),
			Defaults:     make(map[string]string),
		}
		parseCVAConfig(call, source, &set)
		sets = append(sets, set)
	}
	return sets
}

func findCVACalls(node *ts.Node, source []byte) []*ts.Node {
	if node == nil {
		return nil
	}
	var calls []*ts.Node
	if node.Kind() == "call_expression" && calleeName(node, source) == "cva" {
		calls = append(calls, node)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		calls = append(calls, findCVACalls(node.Child(i), source)...)
	}
	return calls
}

func calleeName(call *ts.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return fn.Utf8Text(source)
}

// assignedName walks up from a cva() call to the enclosing variable
// declarator, stopping at statement level.
func assignedName(call *ts.Node, source []byte) string {
	for node := call.Parent(); node != nil; node = node.Parent() {
		switch node.Kind() {
		case "variable_declarator":
			if name := node.ChildByFieldName("name"); name != nil {
				return name.Utf8Text(source)
			}
		case "lexical_declaration", "variable_declaration", "export_statement", "program":
			return ""
		}
	}
	return ""
}

// parseCVAConfig reads the variants and defaultVariants keys of the
// second cva() argument.
func parseCVAConfig(call *ts.Node, source []byte, set *VariantSet) {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	config := nthArgument(args, 1)
	if config == nil || config.Kind() != "object" {
		return
	}

	for _, pair := range objectPairs(config) {
		key, value := pairKeyValue(pair, source)
		if value == nil || value.Kind() != "object" {
			continue
		}
		switch key {
		case "variants":
			for _, vp := range objectPairs(value) {
				name, options := pairKeyValue(vp, source)
				if options == nil || options.Kind() != "object" {
					continue
				}
				var values []string
				for _, op := range objectPairs(options) {
					v, _ := pairKeyValue(op, source)
					values = append(values, v)
				}
				if _, seen := set.Variants[name]; !seen {
					set.Order = append(set.Order, name)
				}
				set.Variants[name] = values
			}
		case "defaultVariants":
			for _, dp := range objectPairs(value) {
				name, v := pairKeyValue(dp, source)
				if v != nil {
					set.Defaults[name] = unquote(v.Utf8Text(source))
				}
			}
		}
	}
}

// nthArgument returns the nth argument, skipping punctuation.
func nthArgument(args *ts.Node, n int) *ts.Node {
	count := 0
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "(", ")", ",", "comment":
			continue
		}
		if count == n {
			return child
		}
		count++
	}
	return nil
}

func objectPairs(obj *ts.Node) []*ts.Node {
	var pairs []*ts.Node
	for i := uint(0); i < obj.ChildCount(); i++ {
		if child := obj.Child(i); child.Kind() == "pair" {
			pairs = append(pairs, child)
		}
	}
	return pairs
}

// pairKeyValue returns the unquoted key text and the value node of pair.
func pairKeyValue(pair *ts.Node, source []byte) (string, *ts.Node) {
	key := pair.ChildByFieldName("key")
	if key == nil {
		return "", nil
	}
	return unquote(key.Utf8Text(source)), pair.ChildByFieldName("value")
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && strings.ContainsRune("\"'`", rune(first)) {
		return s[1 : len(s)-1]
	}
	return s
}
