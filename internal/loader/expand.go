package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"
)

// Expand renders src as a text/template template named name. Other files are
// pulled in with {{template "path"}}, where path is slash separated and
// relative to root; they are read only when referenced and are expanded in
// turn. Templates declared with {{define}} take precedence over files.
func Expand(root, name, src string) (string, error) {
	t := template.New(name).Option("missingkey=error")
	if _, err := t.Parse(src); err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	for {
		missing := unresolvedTemplates(t)
		if len(missing) == 0 {
			break
		}
		for _, ref := range missing {
			if err := includeFile(t, root, ref); err != nil {
				return "", err
			}
		}
	}

	var b strings.Builder
	if err := t.Execute(&b, nil); err != nil {
		return "", fmt.Errorf("expand template: %w", err)
	}
	return b.String(), nil
}

func includeFile(t *template.Template, root, ref string) error {
	rel := filepath.FromSlash(ref)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("include %q: path escapes %s", ref, root)
	}
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return fmt.Errorf("include %q: %w", ref, err)
	}
	if _, err := t.New(ref).Parse(string(data)); err != nil {
		return fmt.Errorf("include %q: parse template: %w", ref, err)
	}
	return nil
}

// unresolvedTemplates returns the sorted names invoked by any template of t's
// set that the set does not define yet.
func unresolvedTemplates(t *template.Template) []string {
	seen := map[string]bool{}
	var missing []string
	for _, tmpl := range t.Templates() {
		if tmpl.Tree == nil {
			continue
		}
		templateRefs(tmpl.Tree.Root, func(name string) {
			if seen[name] || t.Lookup(name) != nil {
				return
			}
			seen[name] = true
			missing = append(missing, name)
		})
	}
	sort.Strings(missing)
	return missing
}

func templateRefs(n parse.Node, visit func(string)) {
	switch n := n.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			templateRefs(c, visit)
		}
	case *parse.TemplateNode:
		visit(n.Name)
	case *parse.IfNode:
		templateRefs(n.List, visit)
		templateRefs(n.ElseList, visit)
	case *parse.RangeNode:
		templateRefs(n.List, visit)
		templateRefs(n.ElseList, visit)
	case *parse.WithNode:
		templateRefs(n.List, visit)
		templateRefs(n.ElseList, visit)
	}
}
