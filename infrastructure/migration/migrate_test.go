package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_ParesUpDown(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range files {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Fatalf("arquivo inesperado: %s", name)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestFiles_VendasSemChaveEstrangeiraDeProduto(t *testing.T) {
	content, err := migrationsFS.ReadFile("migrations/000003_create_sales.up.sql")
	require.NoError(t, err)

	sql := string(content)
	assert.Contains(t, sql, "REFERENCES users (id)")
	assert.NotContains(t, sql, "REFERENCES products")
	assert.Contains(t, sql, "CHECK (quantity > 0)")
}
