package uploads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeResolve(t *testing.T) {
	scheme := BranchScheme()

	tests := []struct {
		field string
		want  Target
	}{
		{"branch_media", Target{Kind: TargetParent}},
		{"service_media__12", Target{Kind: TargetExistingChild, Collection: "services", ChildID: 12}},
		{"tech_media__7", Target{Kind: TargetExistingChild, Collection: "techs", ChildID: 7}},
		{"service_media__new__0", Target{Kind: TargetNewChild, Collection: "services", Index: 0}},
		{"tech_media__new__3", Target{Kind: TargetNewChild, Collection: "techs", Index: 3}},
		{"service_media__xray", Target{Kind: TargetKeyedChild, Collection: "services", Key: "xray"}},
		{"tech_media__mri-scanner", Target{Kind: TargetKeyedChild, Collection: "techs", Key: "mri-scanner"}},
		{"service_media__new__-1", Target{Kind: TargetUnbound}},
		{"service_media__new__abc", Target{Kind: TargetUnbound}},
		{"service_media__", Target{Kind: TargetUnbound}},
		{"random_field", Target{Kind: TargetUnbound}},
		{"doctor_media", Target{Kind: TargetUnbound}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, scheme.Resolve(tt.field))
		})
	}
}

func TestDoctorSchemeResolve(t *testing.T) {
	scheme := DoctorScheme()

	assert.Equal(t, Target{Kind: TargetParent}, scheme.Resolve("doctor_media"))
	assert.Equal(t,
		Target{Kind: TargetKeyedChild, Collection: "awards", Key: "phd"},
		scheme.Resolve("award_media__phd"))
	assert.Equal(t,
		Target{Kind: TargetNewChild, Collection: "awards", Index: 1},
		scheme.Resolve("award_media__new__1"))
	assert.Equal(t, Target{Kind: TargetUnbound}, scheme.Resolve("service_media__1"))
}

func TestGroupByFieldPreservesArrivalOrder(t *testing.T) {
	files := []File{
		{Field: "branch_media", URL: "/uploads/branches/a.jpg"},
		{Field: "service_media__5", URL: "/uploads/services/b.jpg"},
		{Field: "branch_media", URL: "/uploads/branches/c.jpg"},
		{Field: "service_media__5", URL: "/uploads/services/d.jpg"},
	}

	groups := GroupByField(files, BranchScheme())
	require.Len(t, groups, 2)

	assert.Equal(t, "branch_media", groups[0].Field)
	require.Len(t, groups[0].Files, 2)
	assert.Equal(t, "/uploads/branches/a.jpg", groups[0].Files[0].URL)
	assert.Equal(t, "/uploads/branches/c.jpg", groups[0].Files[1].URL)

	assert.Equal(t, "service_media__5", groups[1].Field)
	require.Len(t, groups[1].Files, 2)
	assert.Equal(t, "/uploads/services/b.jpg", groups[1].Files[0].URL)
	assert.Equal(t, "/uploads/services/d.jpg", groups[1].Files[1].URL)
}

func TestGroupingCollectors(t *testing.T) {
	files := []File{
		{Field: "branch_media", URL: "/uploads/branches/p.jpg"},
		{Field: "service_media__9", URL: "/uploads/services/e.jpg"},
		{Field: "service_media__new__0", URL: "/uploads/services/n0.jpg"},
		{Field: "service_media__new__1", URL: "/uploads/services/n1.jpg"},
		{Field: "service_media__xray", URL: "/uploads/services/k.jpg"},
		{Field: "mystery_field", URL: "/uploads/misc/m.jpg"},
	}
	groups := GroupByField(files, BranchScheme())

	parent := groups.ForParent()
	require.Len(t, parent, 1)
	assert.Equal(t, "/uploads/branches/p.jpg", parent[0].URL)

	existing := groups.ForExistingChild("services", 9)
	require.Len(t, existing, 1)
	assert.Equal(t, "/uploads/services/e.jpg", existing[0].URL)
	assert.Empty(t, groups.ForExistingChild("services", 10))
	assert.Empty(t, groups.ForExistingChild("techs", 9))

	new0 := groups.ForNewChild("services", 0)
	require.Len(t, new0, 1)
	assert.Equal(t, "/uploads/services/n0.jpg", new0[0].URL)
	new1 := groups.ForNewChild("services", 1)
	require.Len(t, new1, 1)
	assert.Equal(t, "/uploads/services/n1.jpg", new1[0].URL)

	keyed := groups.ForKey("services", "xray")
	require.Len(t, keyed, 1)
	assert.Equal(t, "/uploads/services/k.jpg", keyed[0].URL)
	assert.Empty(t, groups.ForKey("services", "nope"))
}

func TestParsedFormOptionalValue(t *testing.T) {
	form := &ParsedForm{Values: map[string][]string{
		"title": {""},
		"desc":  {"text"},
	}}

	require.NotNil(t, form.OptionalValue("title"))
	assert.Equal(t, "", *form.OptionalValue("title"))
	assert.Equal(t, "text", *form.OptionalValue("desc"))
	assert.Nil(t, form.OptionalValue("absent"))
}
