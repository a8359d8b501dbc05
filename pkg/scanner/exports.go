package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Export is a component exported from a source file.
type Export struct {
	Name string `json:"name"`
	// Doc is the first paragraph of the JSDoc block above the declaration.
	Doc string `json:"doc,omitempty"`
	// Default is set for "export default".
	Default bool `json:"default,omitempty"`
}

// extractExports lists the PascalCase names a module exports, in source
// order. Lowercase exports such as buttonVariants are helpers, not widgets.
func extractExports(root *ts.Node, source []byte) []Export {
	if root == nil {
		return nil
	}

	// Docs of top-level declarations, for "export { Button }" clauses that
	// name a declaration found elsewhere in the file.
	docs := make(map[string]string)
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		decl := child
		if child.Kind() == "export_statement" {
			if decl = child.ChildByFieldName("declaration"); decl == nil {
				continue
			}
		}
		doc := docComment(child, source)
		for _, name := range declaredNames(decl, source) {
			docs[name] = doc
		}
	}

	var out []Export
	seen := make(map[string]bool)
	add := func(e Export) {
		if !isComponentName(e.Name) || seen[e.Name] {
			return
		}
		seen[e.Name] = true
		out = append(out, e)
	}

	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() != "export_statement" {
			continue
		}
		isDefault := hasChildKind(stmt, "default")

		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			for _, name := range declaredNames(decl, source) {
				add(Export{Name: name, Doc: docs[name], Default: isDefault})
			}
			continue
		}
		if value := stmt.ChildByFieldName("value"); value != nil {
			switch value.Kind() {
			case "identifier": // export default Button;
				name := value.Utf8Text(source)
				add(Export{Name: name, Doc: docs[name], Default: true})
			case "function_expression", "function", "class":
				if name := value.ChildByFieldName("name"); name != nil {
					add(Export{Name: name.Utf8Text(source), Doc: docComment(stmt, source), Default: true})
				}
			}
			continue
		}
		// export { Button, Card as Panel }
		for j := uint(0); j < stmt.NamedChildCount(); j++ {
			clause := stmt.NamedChild(j)
			if clause.Kind() != "export_clause" {
				continue
			}
			for k := uint(0); k < clause.NamedChildCount(); k++ {
				spec := clause.NamedChild(k)
				if spec.Kind() != "export_specifier" {
					continue
				}
				local := spec.ChildByFieldName("name")
				if local == nil {
					continue
				}
				name := local.Utf8Text(source)
				exported := name
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					exported = alias.Utf8Text(source)
				}
				add(Export{Name: exported, Doc: docs[name]})
			}
		}
	}
	return out
}

// declaredNames returns the names bound by a function, class or variable
// declaration.
func declaredNames(decl *ts.Node, source []byte) []string {
	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration", "class_declaration":
		if name := decl.ChildByFieldName("name"); name != nil {
			return []string{name.Utf8Text(source)}
		}
	case "lexical_declaration", "variable_declaration":
		var names []string
		for i := uint(0); i < decl.NamedChildCount(); i++ {
			d := decl.NamedChild(i)
			if d.Kind() != "variable_declarator" {
				continue
			}
			if name := d.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				names = append(names, name.Utf8Text(source))
			}
		}
		return names
	}
	return nil
}

// docComment returns the cleaned JSDoc block immediately above node.
func docComment(node *ts.Node, source []byte) string {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Kind() != "comment" {
		return ""
	}
	text := prev.Utf8Text(source)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return cleanJSDoc(text)
}

// cleanJSDoc strips comment markers and returns the first paragraph,
// stopping at the first block tag.
func cleanJSDoc(text string) string {
	text = strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/")
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if strings.HasPrefix(line, "@") {
			break
		}
		if line == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

func isComponentName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func hasChildKind(node *ts.Node, kind string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == kind {
			return true
		}
	}
	return false
}
