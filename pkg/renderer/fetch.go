package renderer

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
)

// DefaultFetchTimeout bounds a diagram image download.
const DefaultFetchTimeout = 30 * time.Second

// FetchImage downloads the rendered diagram at url and writes it to
// outputPath. Nothing is written unless the server answers 200 OK.
func FetchImage(ctx context.Context, url, outputPath string) (size int, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return size, err
	}

	req.Header.Set("User-Agent", "career-roadmap/1.0")

	client := &http.Client{
		Timeout: DefaultFetchTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return size, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("diagram server returned status: %d", resp.StatusCode)
		return size, err
	}

	var body []byte
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read diagram image")
		return size, err
	}

	if len(body) == 0 {
		err = errors.New("diagram server returned an empty image")
		return size, err
	}

	err = ensureDir(outputPath)
	if err != nil {
		return size, err
	}

	err = os.WriteFile(outputPath, body, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write diagram image: %s", outputPath)
		return size, err
	}

	size = len(body)
	return size, err
}
