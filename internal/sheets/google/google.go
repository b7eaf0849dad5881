// Package google pushes account statements to a Google Sheets
// spreadsheet, one sheet per user.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"gbank/internal/core"
	ports "gbank/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ ports.StatementWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth is either a service account (GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS) or
// an OAuth client plus a token file produced by oauth-init
// (GOOGLE_OAUTH_CLIENT_JSON/FILE and GOOGLE_OAUTH_TOKEN_FILE).
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	if opt, ok := serviceAccountOption(ctx); ok {
		return gsheet.NewService(ctx, opt, goption.WithScopes(gsheet.SpreadsheetsScope))
	}

	httpClient, err := oauthHTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	return gsheet.NewService(ctx, goption.WithHTTPClient(httpClient))
}

func serviceAccountOption(ctx context.Context) (goption.ClientOption, bool) {
	if j := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); j != "" {
		slog.InfoContext(ctx, "Using inline service account credentials")
		return goption.WithCredentialsJSON([]byte(j)), true
	}

	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, false
	}

	data, err := os.ReadFile(file)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read service account file", "path", file, "error", err)
		return nil, false
	}
	slog.InfoContext(ctx, "Using service account credentials from file", "path", file)
	return goption.WithCredentialsJSON(data), true
}

// oauthHTTPClient builds an HTTP client from an OAuth client config
// and a previously saved token (see cmd/oauth-init).
func oauthHTTPClient(ctx context.Context) (*http.Client, error) {
	var clientBytes []byte
	switch {
	case os.Getenv("GOOGLE_OAUTH_CLIENT_JSON") != "":
		clientBytes = []byte(os.Getenv("GOOGLE_OAUTH_CLIENT_JSON"))
	case os.Getenv("GOOGLE_OAUTH_CLIENT_FILE") != "":
		data, err := os.ReadFile(os.Getenv("GOOGLE_OAUTH_CLIENT_FILE"))
		if err != nil {
			return nil, fmt.Errorf("read oauth client file: %w", err)
		}
		clientBytes = data
	default:
		return nil, errors.New("missing Google credentials (service account or OAuth client)")
	}

	cfg, err := oauthgoogle.ConfigFromJSON(clientBytes, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("oauth config: %w", err)
	}

	tokenFile := os.Getenv("GOOGLE_OAUTH_TOKEN_FILE")
	if tokenFile == "" {
		tokenFile = "token.json"
	}
	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth token file (run oauth-init first): %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	return cfg.Client(ctx, &tok), nil
}

// WriteStatement implements ports.StatementWriter. The user's sheet is
// cleared and rewritten whole so repeated pushes stay idempotent.
func (c *Client) WriteStatement(ctx context.Context, userID string, acct core.AccountContext, ledger []core.EnrichedTransaction, summary core.LedgerSummary) (string, error) {
	sheetName := "Statement " + userID

	if err := c.ensureSheet(ctx, sheetName); err != nil {
		return "", fmt.Errorf("ensure sheet %q: %w", sheetName, err)
	}

	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, sheetName, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("clear sheet %q: %w", sheetName, err)
	}

	values := statementValues(acct, ledger, summary)
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, sheetName+"!A1", &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("write sheet %q: %w", sheetName, err)
	}

	ref := fmt.Sprintf("%s!A1:D%d", sheetName, len(values))
	slog.InfoContext(ctx, "Statement written to Google Sheets",
		"user_id", userID,
		"sheet", sheetName,
		"rows", len(values))
	return ref, nil
}

func (c *Client) ensureSheet(ctx context.Context, sheetName string) error {
	spreadsheet, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: sheetName},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	return nil
}

func statementValues(acct core.AccountContext, ledger []core.EnrichedTransaction, summary core.LedgerSummary) [][]any {
	values := [][]any{
		{"Account", acct.AccountNumber},
		{},
		{"Date", "Type", "Amount", "Balance After"},
	}
	for _, tx := range ledger {
		values = append(values, []any{
			statementDate(tx.NormalizedTimestampMS),
			tx.Type,
			tx.SignedAmount,
			tx.BalanceAfter,
		})
	}
	values = append(values,
		[]any{},
		[]any{"Total In", summary.TotalIn},
		[]any{"Total Out", summary.TotalOut},
		[]any{"Closing Balance", summary.ClosingBalance},
	)
	return values
}

func statementDate(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}
