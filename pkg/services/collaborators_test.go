package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/ekaya-l10n/pkg/models"
)

func TestBasicQualityChecker(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		candidate string
		errors    int
		warnings  int
		message   string
	}{
		{name: "clean", source: "Save file", candidate: "Datei speichern"},
		{name: "empty", source: "Save", candidate: "   ", errors: 1, message: "Empty translation"},
		{name: "placeholders kept", source: "{count} files", candidate: "{count} Dateien"},
		{name: "placeholder missing", source: "{count} files", candidate: "Dateien", errors: 1, message: "Missing placeholder {count}"},
		{name: "unknown placeholder", source: "Files", candidate: "%s Dateien", errors: 1, message: "Unknown placeholder %s"},
		{name: "positional placeholders", source: "%1$s of %2$s", candidate: "%2$s von %1$s"},
		{name: "edge whitespace", source: "Name", candidate: "Name ", warnings: 1},
		{name: "trailing newline", source: "Line\n", candidate: "Zeile\n"},
	}

	checker := BasicQualityChecker{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := checker.Check(context.Background(), &models.Entity{}, &models.Locale{}, tt.source, tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.errors, result.Errors())
			assert.Equal(t, tt.warnings, result.Warnings())
			if tt.message != "" {
				require.NotEmpty(t, result.Checks)
				assert.Equal(t, tt.message, result.Checks[0].Message)
				assert.Equal(t, "basic", result.Checks[0].Library)
			}
		})
	}
}

func TestBasicQualityChecker_NewlineDrift(t *testing.T) {
	result, err := BasicQualityChecker{}.Check(context.Background(), &models.Entity{}, &models.Locale{}, "Line\n", "Zeile")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Errors())
	assert.Equal(t, 2, result.Warnings())
}

func TestCheckResult_NilSafe(t *testing.T) {
	var result *CheckResult
	assert.Equal(t, 0, result.Errors())
	assert.Equal(t, 0, result.Warnings())
	assert.Nil(t, copyChecks(nil))
}

func TestNoopQualityChecker(t *testing.T) {
	result, err := NoopQualityChecker{}.Check(context.Background(), nil, nil, "a", "")
	require.NoError(t, err)
	assert.Empty(t, result.Checks)
}

func TestEntityStringCounter(t *testing.T) {
	env := newTestEnv(t)
	env.newEntity("a", "A", "")
	env.newEntity("b", "{n} b", "{n} bs")
	obsolete := env.newEntity("c", "C", "")
	require.NoError(t, env.entityRepo.MarkObsolete(env.ctx, obsolete.ID))

	n, err := NewEntityStringCounter(env.entityRepo).CountTotalStrings(env.ctx, env.resource.ID, env.locale.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "plural entities count once, obsolete ones not at all")
}

func TestReadOnlyChecker(t *testing.T) {
	env := newTestEnv(t)
	checker := NewReadOnlyChecker(env.projectRepo)

	readOnly, err := checker.IsReadOnly(env.ctx, env.project.ID, env.locale.ID)
	require.NoError(t, err)
	assert.False(t, readOnly)

	env.enableLocale(env.project, env.locale, true)
	readOnly, err = checker.IsReadOnly(env.ctx, env.project.ID, env.locale.ID)
	require.NoError(t, err)
	assert.True(t, readOnly)

	readOnly, err = checker.IsReadOnly(env.ctx, env.project.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, readOnly, "locales not enabled for the project are writable")
}

func TestSourceFor(t *testing.T) {
	plural := &models.Entity{String: "{n} file", StringPlural: "{n} files"}
	single := &models.Entity{String: "File"}

	assert.Equal(t, "{n} file", sourceFor(plural, intPtr(0)))
	assert.Equal(t, "{n} files", sourceFor(plural, intPtr(1)))
	assert.Equal(t, "{n} files", sourceFor(plural, intPtr(2)))
	assert.Equal(t, "File", sourceFor(single, nil))
}
