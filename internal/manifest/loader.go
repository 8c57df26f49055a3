package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/gggion/org-transclusion-blocks/internal/ctxlog"
	"github.com/gggion/org-transclusion-blocks/internal/fsutil"
	"github.com/gggion/org-transclusion-blocks/internal/linktype"
)

// LoadRecursively parses every .hcl manifest under the given path and
// registers the declared link types into the registry. Named validators and
// constructors referenced by the manifests must already be registered; a
// dangling name is a load error, not a deferred one, because a manifest
// that cannot bind its Go half can never resolve a block correctly.
func LoadRecursively(ctx context.Context, reg *linktype.Registry, manifestsPath string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading link type manifests...", "path", manifestsPath)

	filePaths, err := fsutil.FindFilesByExtension(manifestsPath, ".hcl")
	if err != nil {
		logger.Error("Failed to walk manifests directory", "path", manifestsPath, "error", err)
		return err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", manifestsPath)
		return nil
	}

	parser := hclparse.NewParser()
	loaded := 0

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var f File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &f); diags.HasErrors() {
			return fmt.Errorf("failed to decode manifest %s: %w", filePath, diags)
		}

		for _, lt := range f.LinkTypes {
			def, err := translate(reg, lt)
			if err != nil {
				return fmt.Errorf("manifest %s: %w", filePath, err)
			}
			lintRelations(ctx, def)
			reg.RegisterDefinition(def)
			loaded++
		}
		logger.Debug("Loaded manifest file.", "file", filePath)
	}

	logger.Info("Link type manifests loaded.", "link_types_loaded", loaded)
	return nil
}

// translate binds one manifest block to its registered Go handlers and
// produces the runtime definition.
func translate(reg *linktype.Registry, lt *LinkTypeBlock) (*linktype.Definition, error) {
	if lt.ID == "" {
		return nil, fmt.Errorf("link_type block has an empty id label")
	}

	construct, ok := reg.Constructor(lt.Constructor)
	if !ok {
		return nil, fmt.Errorf("link type %q: constructor %q is not registered", lt.ID, lt.Constructor)
	}

	def := &linktype.Definition{
		ID:          lt.ID,
		Description: lt.Description,
		Construct:   construct,
	}

	seen := map[string]bool{}
	for _, c := range lt.Components {
		if c.Key == "" {
			return nil, fmt.Errorf("link type %q: component with an empty key label", lt.ID)
		}
		if seen[c.Key] {
			return nil, fmt.Errorf("link type %q: duplicate component key %q", lt.ID, c.Key)
		}
		seen[c.Key] = true
		if c.Arg == "" {
			return nil, fmt.Errorf("link type %q: component %q declares no backing argument", lt.ID, c.Key)
		}

		decl := linktype.ComponentDecl{
			Key:        c.Key,
			Arg:        c.Arg,
			Required:   c.Required,
			ExpandVars: c.ExpandVars,
			Requires:   c.Requires,
			Conflicts:  c.Conflicts,
			ShadowedBy: c.ShadowedBy,
		}

		var err error
		if decl.Validate, err = bindValidator(reg, lt.ID, c.Key, c.Validate); err != nil {
			return nil, err
		}
		if decl.ValidateSyntax, err = bindValidator(reg, lt.ID, c.Key, c.ValidateSyntax); err != nil {
			return nil, err
		}
		if decl.ValidateSemantic, err = bindValidator(reg, lt.ID, c.Key, c.ValidateSemantic); err != nil {
			return nil, err
		}

		def.Components = append(def.Components, decl)
	}
	return def, nil
}

func bindValidator(reg *linktype.Registry, typeID, key, name string) (linktype.ValidatorFunc, error) {
	if name == "" {
		return nil, nil
	}
	fn, ok := reg.Validator(name)
	if !ok {
		return nil, fmt.Errorf("link type %q: component %q references unregistered validator %q", typeID, key, name)
	}
	return fn, nil
}

// lintRelations warns about relation entries that name component keys the
// definition does not declare. Loading still succeeds — the interaction
// checker surfaces a dangling key only when the relation actually triggers —
// but the typo is worth flagging before any block hits it.
func lintRelations(ctx context.Context, def *linktype.Definition) {
	logger := ctxlog.FromContext(ctx)
	for i := range def.Components {
		d := &def.Components[i]
		for _, rel := range [][]string{d.Requires, d.Conflicts, d.ShadowedBy} {
			for _, key := range rel {
				if _, ok := def.Component(key); !ok {
					logger.Warn("Component relation names an undeclared key; the relation can never trigger.",
						"link_type", def.ID, "component", d.Key, "relation_key", key)
				}
			}
		}
	}
}
