package url

import (
	"bufio"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	neturl "net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// COOKIE_JAR holds the last cookie each host set, sent back on every later
// request to that host.
var (
	COOKIE_JAR = map[string]string{}
)

// URL is a resource location the container can fetch: http(s), file or data.
// For data URLs path holds everything after the comma-free "data:" prefix.
type URL struct {
	scheme string
	host   string
	path   string
	port   int
}

func NewURL(url string) (*URL, error) {
	u := &URL{}
	if strings.HasPrefix(url, "data:") {
		u.scheme = "data"
		u.path = strings.TrimPrefix(url, "data:")
		if !strings.Contains(u.path, ",") {
			return nil, fmt.Errorf("malformed data URL: missing comma")
		}
		return u, nil
	}
	splitURL := strings.Split(url, "://")
	if len(splitURL) < 2 {
		return nil, fmt.Errorf("no URL scheme: %s", url)
	}
	u.scheme, url = strings.ToLower(splitURL[0]), splitURL[1]
	switch u.scheme {
	case "http":
		u.port = 80
	case "https":
		u.port = 443
	case "file":
		u.path = "/" + strings.TrimLeft(url, "/")
		if url == "" {
			u.path = "/"
		}
		return u, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.scheme)
	}
	if !strings.Contains(url, "/") {
		url += "/"
	}
	splitPath := strings.SplitN(url, "/", 2)
	u.host, url = splitPath[0], splitPath[1]
	if strings.Contains(u.host, ":") {
		hostParts := strings.Split(u.host, ":")
		u.host = hostParts[0]
		port, err := strconv.Atoi(hostParts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid port in URL: %s", hostParts[1])
		}
		u.port = port
	}
	u.path = "/" + url
	return u, nil
}

// FromPath turns a local file path into a file URL. Existing directories
// get a trailing slash so relative links resolve inside them.
func FromPath(p string) (*URL, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", p, err)
	}
	abs = filepath.ToSlash(abs)
	// keep directories resolvable as bases
	if info, err := os.Stat(abs); err == nil && info.IsDir() && !strings.HasSuffix(abs, "/") {
		abs += "/"
	}
	return &URL{scheme: "file", path: abs}, nil
}

func (u *URL) Scheme() string { return u.scheme }
func (u *URL) Host() string   { return u.host }
func (u *URL) Path() string   { return u.path }
func (u *URL) Port() int      { return u.port }

// Request performs a GET over a fresh connection and returns the response
// headers (status under ":status") and body.
func (u *URL) Request() (map[string]string, []byte, error) {
	if u.scheme != "http" && u.scheme != "https" {
		return nil, nil, fmt.Errorf("%w: cannot request %s", ErrUnsupportedScheme, u.scheme)
	}
	// Create connection
	conn, err := net.Dial("tcp", u.host+":"+strconv.Itoa(u.port))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to host: %w", err)
	}
	defer conn.Close()
	if u.scheme == "https" {
		tlsConn := tls.Client(conn, &tls.Config{ServerName: u.host})
		if err := tlsConn.Handshake(); err != nil {
			return nil, nil, fmt.Errorf("failed to perform TLS handshake: %w", err)
		}
		conn = tlsConn
	}

	// Create Request Header
	request := "GET " + u.path + " HTTP/1.1\r\n"
	if cookie, ok := COOKIE_JAR[u.host]; ok {
		request += "Cookie: " + cookie + "\r\n"
	}
	request += "Host: " + u.host + "\r\n"
	request += "Connection: close\r\n"
	request += "User-Agent: htmlcanvas\r\n"
	request += "\r\n"

	if _, err = conn.Write([]byte(request)); err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	statusline, err := reader.ReadString('\n')
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	split := strings.SplitN(strings.TrimSpace(statusline), " ", 3)
	if len(split) < 2 {
		return nil, nil, fmt.Errorf("malformed status line: %q", statusline)
	}

	responseHeaders := map[string]string{":status": split[1]}
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read response: %w", err)
		}
		if line == "\r\n" {
			break
		}
		split := strings.SplitN(line, ":", 2)
		if len(split) < 2 {
			continue
		}
		header, value := split[0], split[1]
		responseHeaders[strings.ToLower(header)] = strings.TrimSpace(value)
	}

	if cookie, ok := responseHeaders["set-cookie"]; ok {
		// attributes such as Path and SameSite are not tracked
		cookie, _, _ = strings.Cut(cookie, ";")
		COOKIE_JAR[u.host] = strings.TrimSpace(cookie)
	}

	if _, ok := responseHeaders["transfer-encoding"]; ok {
		return nil, nil, fmt.Errorf("transfer-Encoding header found in response, unsupported")
	}
	if _, ok := responseHeaders["content-encoding"]; ok {
		return nil, nil, fmt.Errorf("content-Encoding header found in response, unsupported")
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return responseHeaders, content, nil
}

// Fetch returns the bytes behind u.
func (u *URL) Fetch() ([]byte, error) {
	switch u.scheme {
	case "file":
		data, err := os.ReadFile(filepath.FromSlash(u.path))
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", u, err)
		}
		return data, nil
	case "data":
		return decodeData(u.path)
	case "http", "https":
		headers, body, err := u.Request()
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", u, err)
		}
		if status := headers[":status"]; !strings.HasPrefix(status, "2") {
			return nil, fmt.Errorf("fetch %s: status %s", u, status)
		}
		return body, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.scheme)
}

// decodeData decodes the part of a data URL after "data:".
func decodeData(rest string) ([]byte, error) {
	meta, payload, _ := strings.Cut(rest, ",")
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(payload)
		}
		if err != nil {
			return nil, fmt.Errorf("decode data URL: %w", err)
		}
		return data, nil
	}
	text, err := neturl.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	return []byte(text), nil
}

// MediaType is the declared type of a data URL, if any.
func (u *URL) MediaType() string {
	if u.scheme != "data" {
		return ""
	}
	meta, _, _ := strings.Cut(u.path, ",")
	mt, _, _ := strings.Cut(meta, ";")
	return mt
}

func (u *URL) String() string {
	switch u.scheme {
	case "data":
		return "data:" + u.path
	case "file":
		return "file://" + u.path
	}
	port_part := ":" + strconv.Itoa(u.port)
	if u.scheme == "https" && u.port == 443 {
		port_part = ""
	}
	if u.scheme == "http" && u.port == 80 {
		port_part = ""
	}
	return u.scheme + "://" + u.host + port_part + u.path
}

func (u *URL) Resolve(link_url string) (*URL, error) {
	if strings.Contains(link_url, "://") || strings.HasPrefix(link_url, "data:") {
		return NewURL(link_url)
	}
	if u.scheme == "data" {
		return nil, fmt.Errorf("cannot resolve %q against a data URL", link_url)
	}
	if strings.HasPrefix(link_url, "//") {
		return NewURL(u.scheme + ":" + link_url)
	}
	if !strings.HasPrefix(link_url, "/") {
		dir := path.Dir(u.path)
		if strings.HasSuffix(u.path, "/") {
			dir = strings.TrimSuffix(u.path, "/")
		}
		link_url = dir + "/" + link_url
	}
	link_url = path.Clean(link_url)
	if u.scheme == "file" {
		return &URL{scheme: "file", path: link_url}, nil
	}
	return NewURL(u.scheme + "://" + u.host + ":" + strconv.Itoa(u.port) + link_url)
}
