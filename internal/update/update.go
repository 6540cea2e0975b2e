// Package update checks GitHub for a newer tw release.
package update

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/mod/semver"
)

const (
	DefaultReleasesURL = "https://api.github.com/repos/teamwork/teamwork-cli/releases/latest"
	CheckTimeout       = 5 * time.Second

	envSkipCheck = "TW_NO_UPDATE_CHECK"
)

// Checker looks up the latest release. The zero value uses the public
// GitHub API.
type Checker struct {
	URL  string
	HTTP *http.Client
}

// Result describes the latest release relative to the running version.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateURL       string
	UpdateAvailable bool
}

// Check returns nil when the check is skipped or fails; it never returns an
// error so callers can ignore it entirely.
func (c Checker) Check(ctx context.Context, currentVersion string) *Result {
	if currentVersion == "dev" || currentVersion == "" || os.Getenv(envSkipCheck) != "" {
		return nil
	}

	url := c.URL
	if url == "" {
		url = DefaultReleasesURL
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil
	}

	release := gjson.GetManyBytes(body, "tag_name", "html_url")
	tag := release[0].String()
	if tag == "" {
		return nil
	}

	result := &Result{
		CurrentVersion: currentVersion,
		LatestVersion:  strings.TrimPrefix(tag, "v"),
		UpdateURL:      release[1].String(),
	}
	current, latest := canonical(currentVersion), canonical(tag)
	if semver.IsValid(current) && semver.IsValid(latest) {
		result.UpdateAvailable = semver.Compare(latest, current) > 0
	}
	return result
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
