package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const statsRange = "A1:Z1000"

// Client mirrors the public standings into a Google Spreadsheet.
type Client struct {
	sheets        *sheets.Service
	drive         *drive.Service
	spreadsheetID string
}

func NewClient(credentialsPath, spreadsheetID string) (*Client, error) {
	ctx := context.Background()

	sheetsSrv, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	driveSrv, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{
		sheets:        sheetsSrv,
		drive:         driveSrv,
		spreadsheetID: spreadsheetID,
	}, nil
}

// EnsureSpreadsheet creates the spreadsheet on first use, shares it with the
// owner and makes it publicly readable. No-op when an id is already set.
func (c *Client) EnsureSpreadsheet(title, ownerEmail string) (string, error) {
	if c.spreadsheetID != "" {
		return c.SpreadsheetURL(), nil
	}

	resp, err := c.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	c.spreadsheetID = resp.SpreadsheetId

	if ownerEmail != "" {
		_, err = c.drive.Permissions.Create(c.spreadsheetID, &drive.Permission{
			Type:         "user",
			Role:         "writer",
			EmailAddress: ownerEmail,
		}).Do()
		if err != nil {
			return "", fmt.Errorf("failed to add owner permission: %w", err)
		}
	}

	_, err = c.drive.Permissions.Create(c.spreadsheetID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to make spreadsheet public: %w", err)
	}

	return c.SpreadsheetURL(), nil
}

func (c *Client) UpdateStats(data [][]interface{}) error {
	if c.spreadsheetID == "" {
		return fmt.Errorf("spreadsheet not initialized")
	}

	_, err := c.sheets.Spreadsheets.Values.Clear(c.spreadsheetID, statsRange, &sheets.ClearValuesRequest{}).Do()
	if err != nil {
		return fmt.Errorf("failed to clear range: %w", err)
	}

	valRange := &sheets.ValueRange{Values: data}
	_, err = c.sheets.Spreadsheets.Values.Update(c.spreadsheetID, "A1", valRange).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to update values: %w", err)
	}
	return nil
}

func (c *Client) SpreadsheetURL() string {
	if c.spreadsheetID == "" {
		return ""
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", c.spreadsheetID)
}
