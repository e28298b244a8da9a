package records

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

const (
	defaultGitHubBaseURL = "https://api.github.com"
	githubAccept         = "application/vnd.github.v3+json"
)

// GitHubStore keeps each collection as a JSON file in a GitHub
// repository, read and written through the Contents API. The file's
// content sha doubles as the version token: a write with a stale sha is
// rejected by GitHub and surfaces as ErrConcurrentModification. Every
// write records the change description as the commit message, which
// gives the collection a free audit trail.
type GitHubStore struct {
	token      string
	owner      string
	repo       string
	branch     string
	baseDir    string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// GitHubConfig controls how the GitHub store behaves.
type GitHubConfig struct {
	Token   string
	Owner   string
	Repo    string
	Branch  string // empty means the repository default branch
	BaseDir string // directory inside the repo holding collection files
	BaseURL string // override for tests
	Timeout time.Duration
	// HTTPClient overrides the default client when set.
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// NewGitHubStore creates a configured store with sane defaults.
func NewGitHubStore(cfg GitHubConfig) (*GitHubStore, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("records: github token is required")
	}
	if strings.TrimSpace(cfg.Owner) == "" || strings.TrimSpace(cfg.Repo) == "" {
		return nil, errors.New("records: github owner and repo are required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultGitHubBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &GitHubStore{
		token:      cfg.Token,
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		branch:     cfg.Branch,
		baseDir:    strings.Trim(cfg.BaseDir, "/"),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func (s *GitHubStore) contentsURL(collection string) string {
	filePath := path.Join(s.baseDir, collection+".json")
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.baseURL, s.owner, s.repo, filePath)
}

type githubContents struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// Read fetches the collection file. A 404 means the collection has
// never been written: empty slice, no version token, no error.
func (s *GitHubStore) Read(ctx context.Context, collection string) ([]Record, string, error) {
	reqURL := s.contentsURL(collection)
	if s.branch != "" {
		reqURL += "?ref=" + s.branch
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("records: build github request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("records: read %s: %w: %v", collection, ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []Record{}, "", nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("records: read %s: %w: %v", collection, ErrStoreUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("records: read %s: %w: github returned %d", collection, ErrStoreUnavailable, resp.StatusCode)
	}

	var file githubContents
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("records: read %s: %w: decode contents: %v", collection, ErrStoreUnavailable, err)
	}
	// The Contents API wraps base64 at 60 columns.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
	if err != nil {
		s.logger.Warn("collection content is not valid base64, treating as empty",
			"collection", collection, "error", err)
		return []Record{}, file.SHA, fmt.Errorf("records: read %s: %w", collection, ErrMalformedDocument)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []Record{}, file.SHA, nil
	}

	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		s.logger.Warn("collection document is not a JSON array, treating as empty",
			"collection", collection, "error", err)
		return []Record{}, file.SHA, fmt.Errorf("records: read %s: %w", collection, ErrMalformedDocument)
	}
	return recs, file.SHA, nil
}

// Write replaces the collection file, committing with description as
// the message. version must be the sha from the preceding Read; GitHub
// rejects the write when it no longer matches the file.
func (s *GitHubStore) Write(ctx context.Context, collection string, recs []Record, version, description string) error {
	content, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("records: encode %s: %w", collection, err)
	}
	if description == "" {
		description = fmt.Sprintf("Update %s (%d records)", collection, len(recs))
	}

	payload := struct {
		Message string `json:"message"`
		Content string `json:"content"`
		SHA     string `json:"sha,omitempty"`
		Branch  string `json:"branch,omitempty"`
	}{
		Message: description,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     version,
		Branch:  s.branch,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("records: marshal github payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.contentsURL(collection), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("records: build github request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("records: write %s: %w: %v", collection, ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		s.logger.Info("collection committed",
			"collection", collection,
			"records", len(recs),
			"message", description,
		)
		return nil
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("records: write %s: %w", collection, ErrConcurrentModification)
	default:
		msg := readGitHubError(resp.Body)
		return fmt.Errorf("records: write %s: %w: github returned %d: %s", collection, ErrStoreUnavailable, resp.StatusCode, msg)
	}
}

func (s *GitHubStore) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", githubAccept)
}

func readGitHubError(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return strings.TrimSpace(string(data))
}
