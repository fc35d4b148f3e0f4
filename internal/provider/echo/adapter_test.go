package echo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pdfnotes/internal/domain"
	"github.com/davidbz/pdfnotes/internal/provider/echo"
)

func requestFor(text string) *domain.CompletionRequest {
	pdfName := "notes.pdf"
	return &domain.CompletionRequest{
		Model: "echo4",
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: domain.SystemPrompt},
			{Role: domain.RoleUser, Content: domain.BuildPrompt(text, &pdfName, nil)},
		},
	}
}

func TestNewProvider(t *testing.T) {
	provider := echo.NewProvider()

	require.NotNil(t, provider)
	require.Equal(t, "echo", provider.Name())
}

func TestComplete_Success(t *testing.T) {
	provider := echo.NewProvider()

	resp, err := provider.Complete(context.Background(), requestFor("Light is energy.\n\n  Plants use it.  "))

	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Equal(t, "echo4", resp.Model)
	require.Equal(t, "## Key Concepts\n- Light is energy.\n- Plants use it.\n", resp.Content)
	require.Equal(t, 6, resp.Usage.PromptTokens)
	require.Equal(t, 11, resp.Usage.CompletionTokens)
	require.Equal(t, 17, resp.Usage.TotalTokens)
	require.NotEmpty(t, resp.ID)
}

func TestComplete_PayloadContainingDelimiter(t *testing.T) {
	provider := echo.NewProvider()

	resp, err := provider.Complete(context.Background(), requestFor("before\n---\nafter"))

	require.NoError(t, err)
	require.Equal(t, "## Key Concepts\n- before\n- ---\n- after\n", resp.Content)
}

func TestComplete_BlankPayload(t *testing.T) {
	provider := echo.NewProvider()

	resp, err := provider.Complete(context.Background(), requestFor("   \n  "))

	require.NoError(t, err)
	require.Empty(t, resp.Content)
}

func TestComplete_NoUserMessage(t *testing.T) {
	provider := echo.NewProvider()

	resp, err := provider.Complete(context.Background(), &domain.CompletionRequest{
		Model:    "echo4",
		Messages: []domain.Message{{Role: domain.RoleSystem, Content: "system only"}},
	})

	require.NoError(t, err)
	require.Empty(t, resp.Content)
}

func TestComplete_NilRequest(t *testing.T) {
	provider := echo.NewProvider()

	resp, err := provider.Complete(context.Background(), nil)

	require.Error(t, err)
	require.Nil(t, resp)
	require.Contains(t, err.Error(), "request cannot be nil")
}

func TestComplete_CanceledContext(t *testing.T) {
	provider := echo.NewProvider()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := provider.Complete(ctx, requestFor("text"))

	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, resp)
}
