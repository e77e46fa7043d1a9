package skill

import (
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/skilld/internal/validate"
)

func meta(name, desc string) *fstest.MapFile {
	return &fstest.MapFile{Data: fmt.Appendf(nil, `{"name":%q,"description":%q}`, name, desc)}
}

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

func TestParseMeta(t *testing.T) {
	rec, err := ParseMeta([]byte(`{
		"name": "forms",
		"description": "Form handling",
		"tags": ["react", "validation", "react"],
		"sub_skills": [{"name": "react", "file": "./react/SKILL.md", "triggers": ["useForm", "", "useForm"]}],
		"source": "internal"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "forms", rec.Name)
	assert.Equal(t, []string{"react", "validation"}, rec.Tags)
	require.Len(t, rec.SubSkills, 1)
	assert.Equal(t, "react/SKILL.md", rec.SubSkills[0].File)
	assert.Equal(t, []string{"useForm"}, rec.SubSkills[0].Triggers)
	assert.Equal(t, "internal", rec.Source)
}

func TestParseMeta_Problems(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []error
	}{
		{"invalid json", `{"name":`, []error{ErrInvalidJSON}},
		{"wrong type", `{"name": 5, "description": "x"}`, []error{ErrInvalidJSON}},
		{"missing name", `{"description": "x"}`, []error{validate.ErrInvalidName}},
		{"missing both", `{}`, []error{validate.ErrInvalidName, validate.ErrInvalidDescription}},
		{"bad tag", `{"name":"a","description":"x","tags":[""]}`, []error{validate.ErrInvalidTag}},
		{"traversal", `{"name":"a","description":"x","sub_skills":[{"name":"s","file":"../b/SKILL.md"}]}`, []error{validate.ErrInvalidSubSkill}},
		{"duplicate sub", `{"name":"a","description":"x","sub_skills":[{"name":"s","file":"s.md"},{"name":"s","file":"t.md"}]}`, []error{validate.ErrInvalidSubSkill}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMeta([]byte(tc.data))
			require.Error(t, err)

			var me *MetaError
			require.True(t, errors.As(err, &me))
			for _, want := range tc.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestParseMeta_JoinsProblems(t *testing.T) {
	_, err := ParseMeta([]byte(`{"name": "Bad Name", "description": " "}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "; ")
}

func TestScan(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/_meta.json":      meta("forms", "Form handling"),
		"forms/SKILL.md":        file("# Forms"),
		"auth/_meta.json":       meta("auth", "Authentication"),
		".hidden/_meta.json":    meta("hidden", "Hidden"),
		"_drafts/_meta.json":    meta("drafts", "Drafts"),
		"README.md":             file("not a skill"),
		"broken/_meta.json":     file("{not json"),
		"empty/notes.txt":       file("no metadata"),
		"mismatch/_meta.json":   meta("other-name", "Mismatched"),
		"duplicate/_meta.json":  meta("auth", "Claims auth"),
		"withsubs/_meta.json":   file(`{"name":"withsubs","description":"d","sub_skills":[{"name":"a","file":"a.md"},{"name":"b","file":"b.md"}]}`),
		"withsubs/a.md":         file("alpha"),
		"withsubs/b/extra.json": file("{}"),
	}

	res, err := Scan(fsys, DefaultLayout())
	require.NoError(t, err)

	var names []string
	for _, r := range res.Records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"auth", "forms", "other-name", "withsubs"}, names)

	assert.ElementsMatch(t, []string{
		"broken: invalid JSON in _meta.json: " + jsonErr(t, "{not json"),
		"empty: missing _meta.json",
		"mismatch: 'name' field (other-name) doesn't match directory name",
		"duplicate: 'name' field (auth) doesn't match directory name",
		"duplicate: duplicate skill name 'auth' (already defined in auth)",
		"withsubs: sub-skill 'b' file not found: b.md",
	}, res.Errors)

	for _, r := range res.Records {
		if r.Name == "other-name" {
			assert.Equal(t, "mismatch", r.Dir)
		}
	}
}

func jsonErr(t *testing.T, data string) string {
	t.Helper()
	_, err := ParseMeta([]byte(data))
	require.Error(t, err)
	var me *MetaError
	require.True(t, errors.As(err, &me))
	require.Len(t, me.Problems, 1)
	msg := me.Problems[0].Error()
	return msg[len("invalid JSON in _meta.json: "):]
}

func TestScan_MatchingDirKeepsName(t *testing.T) {
	fsys := fstest.MapFS{
		"alpha/_meta.json": meta("zeta", "Misnamed"),
		"zeta/_meta.json":  meta("zeta", "Real zeta"),
	}

	res, err := Scan(fsys, DefaultLayout())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "zeta", res.Records[0].Dir)
	assert.Equal(t, "Real zeta", res.Records[0].Description)
	assert.Equal(t, []string{
		"alpha: 'name' field (zeta) doesn't match directory name",
		"alpha: duplicate skill name 'zeta' (already defined in zeta)",
	}, res.Errors)
}

func TestScan_StrictNames(t *testing.T) {
	fsys := fstest.MapFS{
		"mismatch/_meta.json": meta("other-name", "Mismatched"),
	}
	layout := DefaultLayout()
	layout.StrictNames = true

	res, err := Scan(fsys, layout)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Equal(t, []string{"mismatch: 'name' field (other-name) doesn't match directory name"}, res.Errors)
}

func TestScan_PartialFailure(t *testing.T) {
	fsys := fstest.MapFS{}
	for i := range 9 {
		name := fmt.Sprintf("skill-%d", i)
		fsys[name+"/_meta.json"] = meta(name, "ok")
	}
	fsys["bad/_meta.json"] = file("[")

	res, err := Scan(fsys, DefaultLayout())
	require.NoError(t, err)
	assert.Len(t, res.Records, 9)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "bad: ")
}

func TestScan_RootMissing(t *testing.T) {
	_, err := Scan(Dir(t.TempDir()+"/missing"), DefaultLayout())
	require.Error(t, err)
}

func TestExtract(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/SKILL.md":                file("# Forms\n\nBody TEXT"),
		"forms/react/SKILL.md":          file("## React Forms\nuse it"),
		"forms/references/zod.md":       file("# Zod\nschemas"),
		"forms/references/.hidden.md":   file("hidden"),
		"forms/references/nested/x.md":  file("nested"),
		"forms/references/binary.dat":   &fstest.MapFile{Data: []byte{0xff, 0xfe, 0x00}},
		"forms/reference/yup.txt":       file("yup"),
		"forms/scripts/deploy.ts.md":    file("deploy notes"),
		"forms/scripts/build.js":        file("not markdown"),
		"forms/references/react-ref.md": file("dup of sub-skill?"),
	}
	rec := Record{
		Name: "forms",
		Dir:  "forms",
		SubSkills: []SubSkill{
			{Name: "react", File: "react/SKILL.md"},
			{Name: "zod-sub", File: "references/zod.md"},
			{Name: "gone", File: "gone.md"},
		},
	}

	got := Extract(fsys, rec, DefaultLayout())

	type row struct{ sub, file string }
	var rows []row
	for _, c := range got {
		rows = append(rows, row{c.SubSkill, c.File})
	}
	assert.Equal(t, []row{
		{"", "SKILL.md"},
		{"react", "react/SKILL.md"},
		{"zod-sub", "references/zod.md"},
		{"react-ref", "references/react-ref.md"},
		{"yup", "reference/yup.txt"},
		{"deploy", "scripts/deploy.ts.md"},
	}, rows)

	body := got[0]
	assert.Equal(t, "forms", body.Domain)
	assert.Equal(t, "# forms\n\nbody text", body.Body)
	assert.Equal(t, []string{"forms"}, body.Headings)
	assert.Equal(t, 4, body.WordCount)
}

func TestExtract_MissingBody(t *testing.T) {
	fsys := fstest.MapFS{"forms/_meta.json": meta("forms", "d")}
	got := Extract(fsys, Record{Name: "forms", Dir: "forms"}, DefaultLayout())
	assert.Empty(t, got)
}

func TestHasReferences(t *testing.T) {
	fsys := fstest.MapFS{
		"a/references/x.md": file("x"),
		"b/SKILL.md":        file("b"),
	}
	assert.True(t, HasReferences(fsys, Record{Name: "a"}, DefaultLayout()))
	assert.False(t, HasReferences(fsys, Record{Name: "b"}, DefaultLayout()))
}

func TestNormalise(t *testing.T) {
	body, headings, words := Normalise("# Title\n#Not heading\n#### Too deep\n##\n### Third  \r\ntext here")
	assert.Equal(t, []string{"title", "third"}, headings)
	assert.Equal(t, 12, words)
	assert.Contains(t, body, "text here")
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	d := Dir(root)

	_, err := d.ReadFile("../escape")
	require.Error(t, err)

	entries, err := d.ReadDir(".")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
