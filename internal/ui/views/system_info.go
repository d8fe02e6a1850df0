package views

import (
	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath  string
	APIBaseURL  string
	SessionPath string
	ExportDir   string
	SignedInAs  string
	Role        string
	TokenExpiry string
}

func RenderSystemInfo(data SystemInfoItem) error {
	signedIn := pterm.Red("Signed out")
	if data.SignedInAs != "" {
		signedIn = pterm.Green(data.SignedInAs)
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"API Base URL", data.APIBaseURL},
		{"Session Storage", data.SessionPath},
		{"Export Directory", data.ExportDir},
		{"Signed In As", signedIn},
	}
	if data.Role != "" {
		tableData = append(tableData, []string{"Role", data.Role})
	}
	if data.TokenExpiry != "" {
		tableData = append(tableData, []string{"Token Expires", data.TokenExpiry})
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
