package uploads

import (
	"strconv"
	"strings"

	"github.com/shifo-uz/clinicbackend/media"
)

// File describes one uploaded file after it has been written to storage.
type File struct {
	Field        string
	OriginalName string
	MimeType     string
	Size         int64
	StoredPath   string
	URL          string
	Kind         media.Kind
}

// TargetKind discriminates the binding-target union.
type TargetKind int

const (
	// TargetUnbound marks fields matching no known name; they stay in the
	// grouping for diagnostics but the reconciliation engine ignores them.
	TargetUnbound TargetKind = iota
	// TargetParent binds files to the parent aggregate's own media list.
	TargetParent
	// TargetExistingChild binds files to a child row by id (edit requests).
	TargetExistingChild
	// TargetNewChild binds files to the Nth id-less child created in the
	// same request, 0-indexed, counted per collection.
	TargetNewChild
	// TargetKeyedChild binds files to a child by its client-chosen key
	// (create requests).
	TargetKeyedChild
)

// Target is the resolved destination of an uploaded file's field name.
type Target struct {
	Kind       TargetKind
	Collection string // "services", "techs", "awards"
	ChildID    uint   // TargetExistingChild
	Index      int    // TargetNewChild
	Key        string // TargetKeyedChild
}

// Scheme declares the recognised field names for one aggregate type.
// A field named exactly ParentField targets the parent; a field named
// <prefix>__<token> targets a child of the prefix's collection.
type Scheme struct {
	ParentField string
	Collections map[string]string // field prefix -> collection name
}

// BranchScheme matches the branch aggregate's form fields.
func BranchScheme() Scheme {
	return Scheme{
		ParentField: "branch_media",
		Collections: map[string]string{
			"service_media": "services",
			"tech_media":    "techs",
		},
	}
}

// DoctorScheme matches the doctor aggregate's form fields.
func DoctorScheme() Scheme {
	return Scheme{
		ParentField: "doctor_media",
		Collections: map[string]string{
			"award_media": "awards",
		},
	}
}

// MediaOnlyScheme is for aggregates with no child collections (gallery,
// news, patient, reception).
func MediaOnlyScheme(parentField string) Scheme {
	return Scheme{ParentField: parentField}
}

// Resolve parses a form field name into its binding target. The mapping is
// total: unparseable names come back TargetUnbound, never an error.
func (s Scheme) Resolve(field string) Target {
	if field == s.ParentField {
		return Target{Kind: TargetParent}
	}
	for prefix, collection := range s.Collections {
		rest, ok := strings.CutPrefix(field, prefix+"__")
		if !ok || rest == "" {
			continue
		}
		if idxStr, isNew := strings.CutPrefix(rest, "new__"); isNew {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 0 {
				return Target{Kind: TargetUnbound}
			}
			return Target{Kind: TargetNewChild, Collection: collection, Index: idx}
		}
		if id, err := strconv.ParseUint(rest, 10, 32); err == nil {
			return Target{Kind: TargetExistingChild, Collection: collection, ChildID: uint(id)}
		}
		return Target{Kind: TargetKeyedChild, Collection: collection, Key: rest}
	}
	return Target{Kind: TargetUnbound}
}

// Group is one distinct form field with its resolved target and files in
// arrival order.
type Group struct {
	Field  string
	Target Target
	Files  []File
}

// Grouping is the full file grouping of one request, stable by arrival
// order of the first file of each field.
type Grouping []Group

// GroupByField groups uploaded files by form field name and resolves each
// field against the scheme.
func GroupByField(files []File, scheme Scheme) Grouping {
	index := make(map[string]int)
	var groups Grouping
	for _, f := range files {
		i, ok := index[f.Field]
		if !ok {
			i = len(groups)
			index[f.Field] = i
			groups = append(groups, Group{Field: f.Field, Target: scheme.Resolve(f.Field)})
		}
		groups[i].Files = append(groups[i].Files, f)
	}
	return groups
}

// ForParent returns the files bound to the parent's own media list.
func (g Grouping) ForParent() []File {
	return g.collect(func(t Target) bool { return t.Kind == TargetParent })
}

// ForExistingChild returns the files bound to a child row by id.
func (g Grouping) ForExistingChild(collection string, id uint) []File {
	return g.collect(func(t Target) bool {
		return t.Kind == TargetExistingChild && t.Collection == collection && t.ChildID == id
	})
}

// ForNewChild returns the files bound to the Nth id-less child of the
// collection created in this request.
func (g Grouping) ForNewChild(collection string, index int) []File {
	return g.collect(func(t Target) bool {
		return t.Kind == TargetNewChild && t.Collection == collection && t.Index == index
	})
}

// ForKey returns the files bound to a child by its client-chosen key.
func (g Grouping) ForKey(collection, key string) []File {
	return g.collect(func(t Target) bool {
		return t.Kind == TargetKeyedChild && t.Collection == collection && t.Key == key
	})
}

func (g Grouping) collect(match func(Target) bool) []File {
	var out []File
	for _, group := range g {
		if match(group.Target) {
			out = append(out, group.Files...)
		}
	}
	return out
}
