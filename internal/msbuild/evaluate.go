// Package msbuild is the build-property evaluator boundary: an in-process
// project-file evaluation good enough for design-time metadata, and an
// out-of-process fallback that asks the real build tool.
package msbuild

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// LoadOptions mirror the evaluator collaborator's load switches.
type LoadOptions struct {
	// IgnoreMissingImports skips <Import> elements instead of failing when
	// the imported file does not exist.
	IgnoreMissingImports bool
	// FailOnUnresolvedSDK rejects projects whose Sdk attribute cannot be
	// resolved to a concrete identifier.
	FailOnUnresolvedSDK bool
}

// Evaluator performs in-process project evaluation.
type Evaluator struct {
	opts LoadOptions
}

func NewEvaluator(opts LoadOptions) *Evaluator {
	return &Evaluator{opts: opts}
}

// Project is an evaluated project handle: a property bag plus item lists,
// with SDK-style defaults applied for the properties this tool reads.
type Project struct {
	path       string
	dir        string
	properties map[string]string
	items      map[string][]string
}

// Evaluate loads and evaluates a project file. It fails on malformed XML,
// a missing import (unless ignored), or an unresolved SDK identifier; the
// caller treats any failure as a per-project skip.
func (e *Evaluator) Evaluate(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}

	p := &Project{
		path:       abs,
		dir:        filepath.Dir(abs),
		properties: make(map[string]string),
		items:      make(map[string][]string),
	}
	if err := p.parse(data, e.opts); err != nil {
		return nil, err
	}
	p.expand()
	p.applyDefaults()
	return p, nil
}

// FullPath returns the absolute project file path.
func (p *Project) FullPath() string { return p.path }

// Property returns an evaluated property value, empty if absent.
func (p *Project) Property(name string) string { return p.properties[name] }

// Items returns the as-declared include strings for an item type.
func (p *Project) Items(itemType string) []string { return p.items[itemType] }

// ItemPaths returns item includes resolved to absolute paths relative to the
// project directory. Glob includes are expanded; a pattern matching nothing
// contributes nothing.
func (p *Project) ItemPaths(itemType string) []string {
	declared := p.items[itemType]
	out := make([]string, 0, len(declared))
	for _, d := range declared {
		q := d
		if !filepath.IsAbs(q) {
			q = filepath.Join(p.dir, q)
		}
		if strings.ContainsAny(q, "*?") {
			matches, err := doublestar.FilepathGlob(filepath.ToSlash(q))
			if err != nil {
				continue
			}
			for _, m := range matches {
				out = append(out, filepath.Clean(m))
			}
			continue
		}
		out = append(out, filepath.Clean(q))
	}
	return out
}

// parse walks the project XML token stream, collecting properties from
// unconditioned <PropertyGroup> elements (last definition wins) and item
// includes from unconditioned <ItemGroup> elements. Conditioned groups and
// entries require real build evaluation and are skipped.
func (p *Project) parse(data []byte, opts LoadOptions) error {
	type frame struct {
		name string
		skip bool
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var stack []frame
	var propName string
	var propValue strings.Builder

	attr := func(el xml.StartElement, name string) (string, bool) {
		for _, a := range el.Attr {
			if a.Name.Local == name {
				return a.Value, true
			}
		}
		return "", false
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parse project: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			_, conditioned := attr(t, "Condition")
			parentSkip := len(stack) > 0 && stack[len(stack)-1].skip
			skip := conditioned || parentSkip

			switch {
			case len(stack) == 0:
				if t.Name.Local != "Project" {
					return fmt.Errorf("unexpected root element %q", t.Name.Local)
				}
				if sdk, ok := attr(t, "Sdk"); ok && opts.FailOnUnresolvedSDK && strings.Contains(sdk, "$(") {
					return fmt.Errorf("unresolved SDK identifier %q", sdk)
				}
			case len(stack) == 1 && t.Name.Local == "Import":
				if ref, ok := attr(t, "Project"); ok && !opts.IgnoreMissingImports && !strings.Contains(ref, "$(") {
					imp := ref
					if !filepath.IsAbs(imp) {
						imp = filepath.Join(p.dir, filepath.FromSlash(strings.ReplaceAll(ref, `\`, "/")))
					}
					if _, statErr := os.Stat(imp); statErr != nil {
						return fmt.Errorf("imported project not found: %s", ref)
					}
				}
			case len(stack) == 2 && stack[1].name == "PropertyGroup" && !skip:
				propName = t.Name.Local
				propValue.Reset()
			case len(stack) == 2 && stack[1].name == "ItemGroup" && !skip:
				if include, ok := attr(t, "Include"); ok {
					for _, part := range strings.Split(include, ";") {
						part = strings.TrimSpace(part)
						if part == "" {
							continue
						}
						part = filepath.FromSlash(strings.ReplaceAll(part, `\`, "/"))
						p.items[t.Name.Local] = append(p.items[t.Name.Local], part)
					}
				}
			}
			stack = append(stack, frame{name: t.Name.Local, skip: skip})

		case xml.CharData:
			if propName != "" {
				propValue.Write(t)
			}

		case xml.EndElement:
			if propName != "" && len(stack) == 3 && stack[2].name == propName {
				p.properties[propName] = strings.TrimSpace(propValue.String())
				propName = ""
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return nil
}

var propertyRef = regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_]*)\)`)

// expand settles $(Prop) references in properties and item includes. Unknown
// names expand to the empty string, matching build-tool semantics.
func (p *Project) expand() {
	base := filepath.Base(p.path)
	reserved := map[string]string{
		"MSBuildProjectFullPath":  p.path,
		"MSBuildProjectDirectory": p.dir,
		"MSBuildProjectFile":      base,
		"MSBuildProjectName":      strings.TrimSuffix(base, filepath.Ext(base)),
		"MSBuildProjectExtension": filepath.Ext(base),
	}
	for k, v := range reserved {
		if _, declared := p.properties[k]; !declared {
			p.properties[k] = v
		}
	}

	replace := func(s string) string {
		return propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
			return p.properties[ref[2:len(ref)-1]]
		})
	}

	// A handful of passes settles chained references.
	for pass := 0; pass < 4; pass++ {
		changed := false
		for k, v := range p.properties {
			if nv := replace(v); nv != v {
				p.properties[k] = nv
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	for _, list := range p.items {
		for i, v := range list {
			list[i] = replace(v)
		}
	}
}

// applyDefaults fills in the SDK-style derived properties this tool reads,
// for projects that declare only the usual minimal set.
func (p *Project) applyDefaults() {
	set := func(k, v string) {
		if p.properties[k] == "" {
			p.properties[k] = v
		}
	}

	set("Configuration", "Debug")
	set("AssemblyName", p.properties["MSBuildProjectName"])
	set("OutputType", "Library")
	set("TargetExt", ".dll")

	tf := p.properties["TargetFramework"]
	outSegs := []string{"bin", p.properties["Configuration"]}
	objSegs := []string{"obj", p.properties["Configuration"]}
	if tf != "" {
		outSegs = append(outSegs, tf)
		objSegs = append(objSegs, tf)
	}
	sep := string(filepath.Separator)
	set("OutputPath", filepath.Join(outSegs...)+sep)
	set("IntermediateOutputPath", filepath.Join(objSegs...)+sep)

	outDir := p.properties["OutputPath"]
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(p.dir, outDir)
	}
	asm := p.properties["AssemblyName"]
	set("TargetPath", filepath.Join(outDir, asm+p.properties["TargetExt"]))
	set("ProjectDepsFilePath", filepath.Join(outDir, asm+".deps.json"))
	set("ProjectRuntimeConfigFilePath", filepath.Join(outDir, asm+".runtimeconfig.json"))
}
