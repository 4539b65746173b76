package pathquery_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itseasy "github.com/wiryonolau/itseasy-util"
	"github.com/wiryonolau/itseasy-util/pathquery"
)

func companies() map[string]any {
	return map[string]any{
		"companies": map[string]any{
			"employee": []any{
				map[string]any{"name": "Tom"},
				map[string]any{"name": "Jerry"},
			},
		},
	}
}

func TestQuery_IndexForms(t *testing.T) {
	for _, path := range []string{
		"companies.employee.[1].name",
		"companies.employee[1].name",
		"companies.employee.1.name",
	} {
		v, err := pathquery.Query(companies(), path, pathquery.WithStrict(true))
		require.NoError(t, err, path)
		assert.Equal(t, "Jerry", v, path)
	}
}

func TestQuerySegments(t *testing.T) {
	v, err := pathquery.QuerySegments(companies(), []string{"companies", "employee", "[0]", "name"})
	require.NoError(t, err)
	assert.Equal(t, "Tom", v)
}

func TestQuery_NullVersusMissing(t *testing.T) {
	root := map[string]any{"a": nil, "empty": ""}

	v, err := pathquery.Query(root, "a", pathquery.WithPlaceholder("placeholder"))
	require.NoError(t, err)
	assert.Nil(t, v)

	v, _ = pathquery.Query(root, "empty", pathquery.WithPlaceholder("placeholder"))
	assert.Equal(t, "", v)

	v, err = pathquery.Query(root, "b", pathquery.WithPlaceholder("placeholder"))
	require.NoError(t, err)
	assert.Equal(t, "placeholder", v)
}

func TestQuery_StrictMiss(t *testing.T) {
	_, err := pathquery.Query(companies(), "companies.employee.[5].name", pathquery.WithStrict(true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, itseasy.ErrPathNotFound))
	iss, ok := itseasy.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "companies.employee.[5]", iss[0].Path)

	// a nil value cannot be traversed further
	_, err = pathquery.Query(map[string]any{"a": nil}, "a.b", pathquery.WithStrict(true))
	assert.True(t, errors.Is(err, itseasy.ErrPathNotFound))
}

func TestQuery_ShortCircuitsOnPlaceholder(t *testing.T) {
	v, err := pathquery.Query(companies(), "companies.nobody.name.deeper", pathquery.WithPlaceholder(-1))
	require.NoError(t, err)
	assert.Equal(t, -1, v)
}

func TestQuery_Separator(t *testing.T) {
	v, err := pathquery.Query(companies(), "companies/employee/[0]/name", pathquery.WithSeparator("/"))
	require.NoError(t, err)
	assert.Equal(t, "Tom", v)
}

func TestQuery_EmptyPathIsRoot(t *testing.T) {
	root := companies()
	v, err := pathquery.Query(root, "", pathquery.WithStrict(true))
	require.NoError(t, err)
	assert.Equal(t, root, v)
}

type employee struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	email string
}

func (e *employee) GetName() string { return "Mr. " + e.Name }

type team struct {
	Lead    *employee         `json:"lead"`
	Members []employee        `json:"members"`
	Scores  map[int]float64   `json:"scores"`
	Labels  map[string]string `json:"labels"`
}

func TestQuery_Structs(t *testing.T) {
	root := &team{
		Lead:    &employee{Name: "Tom", Tags: []string{"x", "y"}},
		Members: []employee{{Name: "Jerry", email: "j@example.com"}},
		Scores:  map[int]float64{3: 1.5},
		Labels:  map[string]string{"0": "zero"},
	}
	cases := map[string]any{
		"lead.name":        "Mr. Tom",
		"lead.tags[1]":     "y",
		"members.[0].name": "Mr. Jerry",
		"scores.[3]":       1.5,
		"scores.3":         1.5,
		"labels.[0]":       "zero",
		"members[0].tags":  []string(nil),
	}
	for path, want := range cases {
		v, err := pathquery.Query(root, path, pathquery.WithStrict(true))
		require.NoError(t, err, path)
		assert.Equal(t, want, v, path)
	}

	for _, path := range []string{"members.[0].email", "lead.[0]", "nothing"} {
		_, err := pathquery.Query(root, path, pathquery.WithStrict(true))
		assert.True(t, errors.Is(err, itseasy.ErrPathNotFound), path)
	}

	v, _ := pathquery.Query(&team{}, "lead.name", pathquery.WithPlaceholder("none"))
	assert.Equal(t, "none", v)
}

type fixed []string

func (f fixed) Index(i int) (any, bool) {
	if i < len(f) {
		return strings.ToUpper(f[i]), true
	}
	return nil, false
}

type dict map[string]int

func (d dict) Lookup(name string) (any, bool) {
	v, ok := d[name]
	return v, ok
}

func TestQuery_Interfaces(t *testing.T) {
	root := map[string]any{"list": fixed{"a", "b"}, "dict": dict{"k": 1}}
	v, err := pathquery.Query(root, "list.[1]", pathquery.WithStrict(true))
	require.NoError(t, err)
	assert.Equal(t, "B", v)

	v, err = pathquery.Query(root, "dict.k", pathquery.WithStrict(true))
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = pathquery.Query(root, "dict.[0]", pathquery.WithStrict(true))
	assert.Error(t, err)
}

func TestQuery_MaxDepth(t *testing.T) {
	path := strings.Repeat("a.", 9) + "a"
	_, err := pathquery.Query(map[string]any{}, path, pathquery.WithStrict(true), pathquery.WithMaxDepth(5))
	assert.True(t, errors.Is(err, itseasy.ErrPathNotFound))

	v, err := pathquery.Query(map[string]any{}, path, pathquery.WithMaxDepth(5), pathquery.WithPlaceholder("p"))
	require.NoError(t, err)
	assert.Equal(t, "p", v)
}

func TestParseSegment(t *testing.T) {
	assert.Equal(t, []pathquery.Step{{Name: "a"}}, pathquery.ParseSegment("a"))
	assert.Equal(t, []pathquery.Step{{Index: 2, IsIndex: true}}, pathquery.ParseSegment("[2]"))
	assert.Equal(t, []pathquery.Step{{Name: "a"}, {Index: 10, IsIndex: true}}, pathquery.ParseSegment("a[10]"))
	assert.Equal(t, []pathquery.Step{{Name: "a[x]"}}, pathquery.ParseSegment("a[x]"))
	assert.Equal(t, []pathquery.Step{{Name: "a[-1]"}}, pathquery.ParseSegment("a[-1]"))
}
