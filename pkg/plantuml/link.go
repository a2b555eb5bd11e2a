package plantuml

import (
	"strings"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the public PlantUML PNG endpoint.
const DefaultBaseURL = "http://www.plantuml.com/plantuml/png"

// LinkBuilder turns diagram source into renderer URLs. The zero value is not
// usable; construct with NewLinkBuilder.
type LinkBuilder struct {
	baseURL  string
	alphabet Alphabet
	level    Level
}

// NewLinkBuilder returns a LinkBuilder for baseURL. An empty baseURL selects
// DefaultBaseURL. The base URL is not validated.
func NewLinkBuilder(baseURL string, alphabet Alphabet, level Level) (builder LinkBuilder) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	builder = LinkBuilder{
		baseURL:  strings.TrimRight(baseURL, "/"),
		alphabet: alphabet,
		level:    level,
	}
	return builder
}

// BaseURL returns the renderer endpoint tokens are appended to.
func (b LinkBuilder) BaseURL() (baseURL string) {
	baseURL = b.baseURL
	return baseURL
}

// Token compresses and encodes source.
func (b LinkBuilder) Token(source string) (token string, err error) {
	var block []byte
	block, err = Compress(source, b.level)
	if err != nil {
		return token, err
	}

	token = Encode(block, b.alphabet)
	return token, err
}

// URL returns {base_url}/{token} for source.
func (b LinkBuilder) URL(source string) (url string, err error) {
	var token string
	token, err = b.Token(source)
	if err != nil {
		err = errors.Wrap(err, "failed to build diagram token")
		return url, err
	}

	url = b.baseURL + "/" + token
	return url, err
}

// Source recovers the diagram text from a token produced by Token.
func (b LinkBuilder) Source(token string) (source string, err error) {
	var block []byte
	block, err = Decode(token, b.alphabet)
	if err != nil {
		return source, err
	}

	source, err = Decompress(block)
	return source, err
}
