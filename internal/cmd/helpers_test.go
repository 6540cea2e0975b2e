package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSplitCommaList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitCommaList(" a, b,,c "))
	assert.Nil(t, splitCommaList(" , "))
}

func TestParseIDArgs(t *testing.T) {
	ids, err := parseIDArgs([]string{"1", "2,3"}, "task")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	ids, err = parseIDArgs([]string{"https://acme.teamwork.com/#/tasks/77", "8"}, "task")
	require.NoError(t, err)
	assert.Equal(t, []string{"77", "8"}, ids)

	_, err = parseIDArgs([]string{"https://acme.teamwork.com/#/projects/77"}, "task")
	assert.ErrorContains(t, err, "not a task")

	_, err = parseIDArgs([]string{"1", "two"}, "task")
	assert.Error(t, err)

	_, err = parseIDArgs([]string{","}, "task")
	assert.Error(t, err)
}

func TestNamedRecords(t *testing.T) {
	list := gjson.Parse(`[{"id":"1","name":"One"},{"name":"no id"},{"id":2,"name":"Two"}]`)
	named := namedRecords(list)
	require.Len(t, named, 2)
	assert.Equal(t, "1", named[0].ID)
	assert.Equal(t, "2", named[1].ID)
	assert.Equal(t, "Two", named[1].Name)
}

func TestCell(t *testing.T) {
	assert.Equal(t, "-", cell(gjson.Result{}))
	assert.Equal(t, "a b", cell(gjson.Parse(`"a\nb"`)))
	long := gjson.Parse(`"0123456789012345678901234567890123456789012345678901234567890123456789"`)
	assert.Len(t, cell(long), 60)
}

func TestFlagAlias(t *testing.T) {
	var project string
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().StringVar(&project, "project", "", "")
	flagAlias(cmd.Flags(), "project", "proj")

	cmd.SetArgs([]string{"--proj", "42"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "42", project)
	assert.True(t, flagOrAliasChanged(cmd, "project"))
	assert.True(t, cmd.Flags().Lookup("proj").Hidden)
}

func TestResolveCacheDirOverride(t *testing.T) {
	t.Setenv("TW_CACHE_DIR", "/tmp/tw-test-cache")
	assert.Equal(t, "/tmp/tw-test-cache", resolveCacheDir())
}
