package swagger

import (
	"bufio"
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var (
	summaryLine     = regexp.MustCompile(`^//\s+@Summary\s+(.+)$`)
	descriptionLine = regexp.MustCompile(`^//\s+@Description\s+(.+)$`)
	routerLine      = regexp.MustCompile(`^//\s+@Router\s+(\S+)\s+\[(\w+)\]$`)
)

type annotatedOperation struct {
	path, method, summary, description string
}

// annotations collects the godoc operations declared in a handler source file.
func annotations(t *testing.T, file string) []annotatedOperation {
	t.Helper()
	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	var (
		ops []annotatedOperation
		cur annotatedOperation
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if m := summaryLine.FindStringSubmatch(line); m != nil {
			cur.summary = strings.TrimSpace(m[1])
		}
		if m := descriptionLine.FindStringSubmatch(line); m != nil {
			cur.description = strings.TrimSpace(m[1])
		}
		if m := routerLine.FindStringSubmatch(line); m != nil {
			cur.path, cur.method = m[1], m[2]
			ops = append(ops, cur)
			cur = annotatedOperation{}
		}
	}
	require.NoError(t, sc.Err())
	return ops
}

func TestRegisteredDocMatchesHandlerAnnotations(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string `json:"basePath"`
		Paths    map[string]map[string]struct {
			Summary     string `json:"summary"`
			Description string `json:"description"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api", doc.BasePath)

	var ops []annotatedOperation
	for _, file := range []string{"../../internal/auth/handler.go", "../../internal/files/handler.go"} {
		ops = append(ops, annotations(t, file)...)
	}
	require.NotEmpty(t, ops)

	documented := 0
	for _, methods := range doc.Paths {
		documented += len(methods)
	}
	assert.Equal(t, len(ops), documented, "every documented operation has a handler annotation")

	for _, op := range ops {
		got, ok := doc.Paths[op.path][op.method]
		if !assert.True(t, ok, "%s %s missing from docs", op.method, op.path) {
			continue
		}
		assert.Equal(t, op.summary, got.Summary, "%s %s summary", op.method, op.path)
		assert.Equal(t, op.description, got.Description, "%s %s description", op.method, op.path)
	}
}
