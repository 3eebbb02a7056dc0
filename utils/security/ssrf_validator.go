// Package security guards outbound page fetches against server-side request forgery.
package security

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/idna"
)

const (
	maxRedirects  = 10
	lookupTimeout = 5 * time.Second
)

// ValidationError describes why a URL or connection was refused.
type ValidationError struct {
	Type    string
	Message string
	Host    string
}

func (e *ValidationError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Host)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// SSRFValidator refuses URLs and connections that point at loopback, private,
// link-local or cloud metadata addresses. Checks run before the request, on
// every redirect and again at dial time against the resolved IP.
type SSRFValidator struct {
	metadataIPs      map[string]struct{}
	internalSuffixes []string
	allowedPorts     map[string]bool
	resolver         *net.Resolver
}

func NewSSRFValidator() *SSRFValidator {
	return &SSRFValidator{
		metadataIPs: map[string]struct{}{
			"169.254.169.254": {}, // AWS/Azure/GCP
			"100.100.100.200": {}, // Alibaba Cloud
			"192.0.0.192":     {}, // Oracle Cloud
			"fd00:ec2::254":   {}, // AWS IPv6
		},
		internalSuffixes: []string{
			".local", ".internal", ".corp", ".lan", ".intranet", ".localhost", ".cluster.local",
		},
		allowedPorts: map[string]bool{"80": true, "443": true, "8080": true, "8443": true},
		resolver:     net.DefaultResolver,
	}
}

// ValidateURL checks scheme, host name, port and every address the host resolves to.
func (v *SSRFValidator) ValidateURL(ctx context.Context, u *url.URL) error {
	if u == nil || u.Hostname() == "" {
		return &ValidationError{Type: "INVALID_URL", Message: "empty host not allowed"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Type: "SCHEME_BLOCKED", Message: "only http and https are allowed", Host: u.Scheme}
	}
	if port := u.Port(); port != "" && !v.allowedPorts[port] {
		return &ValidationError{Type: "PORT_BLOCKED", Message: "non-standard port not allowed", Host: u.Host}
	}

	host, err := idna.Lookup.ToASCII(strings.TrimSuffix(strings.ToLower(u.Hostname()), "."))
	if err != nil {
		return &ValidationError{Type: "INVALID_HOST", Message: "invalid internationalized domain name", Host: u.Hostname()}
	}
	if host == "localhost" {
		return &ValidationError{Type: "INTERNAL_HOST_BLOCKED", Message: "access to internal hosts not allowed", Host: host}
	}
	for _, suffix := range v.internalSuffixes {
		if strings.HasSuffix(host, suffix) {
			return &ValidationError{Type: "INTERNAL_HOST_BLOCKED", Message: "access to internal hosts not allowed", Host: host}
		}
	}

	if ip := net.ParseIP(host); ip != nil {
		return v.checkIP(ip)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	addrs, err := v.resolver.LookupIPAddr(lookupCtx, host)
	if err != nil {
		return &ValidationError{Type: "DNS_RESOLUTION_ERROR", Message: err.Error(), Host: host}
	}
	for _, addr := range addrs {
		if err := v.checkIP(addr.IP); err != nil {
			return err
		}
	}
	return nil
}

func (v *SSRFValidator) checkIP(ip net.IP) error {
	if _, ok := v.metadataIPs[ip.String()]; ok {
		return &ValidationError{Type: "METADATA_ENDPOINT_BLOCKED", Message: "access to metadata endpoint not allowed", Host: ip.String()}
	}
	if isPrivateOrDangerous(ip) {
		return &ValidationError{Type: "PRIVATE_IP_BLOCKED", Message: "access to private address not allowed", Host: ip.String()}
	}
	return nil
}

func isPrivateOrDangerous(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast() {
		return true
	}
	// 100.64.0.0/10 (carrier-grade NAT)
	if ip4 := ip.To4(); ip4 != nil && ip4[0] == 100 && ip4[1]&0xc0 == 64 {
		return true
	}
	return false
}

// SecureHTTPClient returns a client whose dialer re-checks the resolved address
// and whose redirects go through ValidateURL.
func (v *SSRFValidator) SecureHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
		Control:   v.controlDial,
	}
	transport := &http.Transport{
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			if err := v.ValidateURL(req.Context(), req.URL); err != nil {
				return fmt.Errorf("redirect blocked: %w", err)
			}
			return nil
		},
	}
}

// controlDial runs after DNS resolution, so address is always ip:port.
func (v *SSRFValidator) controlDial(_, address string, _ syscall.RawConn) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return &ValidationError{Type: "CONNECTION_ADDRESS_ERROR", Message: err.Error(), Host: address}
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return &ValidationError{Type: "CONNECTION_ADDRESS_ERROR", Message: "not an IP address", Host: address}
	}
	if err := v.checkIP(ip); err != nil {
		return err
	}
	if !v.allowedPorts[port] {
		return &ValidationError{Type: "PORT_BLOCKED", Message: "connection to non-allowed port blocked", Host: address}
	}
	return nil
}
