// Package security はアプリケーションのセキュリティ機能を提供する。
package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

// ResumeURLGuardService は応募者が入力する履歴書URLの検証機能のインターフェースを定義する。
// 応募作成時に使用され、社内ネットワークを指すURLの登録を防ぐ。
type ResumeURLGuardService interface {
	// ValidateURL はURLの安全性を検証する。
	// スキーム、ホスト、IPアドレスの静的検証を常に行い、到達性確認が
	// 有効な場合はSSRF防止機能付きクライアントで実際のアクセスも確認する。
	ValidateURL(rawURL string) error
}

// allowedSchemes は履歴書URLで許可されるスキーム。
var allowedSchemes = []string{"http", "https"}

// blockedNetworks はブロックされるネットワーク範囲。
// パッケージ初期化時に1回だけパースし、ValidateURLでの検証に使用する。
// safeurlはnet.DialerレベルでDNS解決後のIPアドレスも検証するため、
// DNS再バインディング攻撃にも対応している。
var blockedNetworks []net.IPNet

func init() {
	cidrs := []string{
		// プライベートIPアドレス (RFC 1918)
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		// ループバック (RFC 1122)
		"127.0.0.0/8",
		// リンクローカル (RFC 3927) - クラウドメタデータIP (169.254.169.254) を含む
		"169.254.0.0/16",
		// カレントネットワーク
		"0.0.0.0/8",
		// IPv6ループバック
		"::1/128",
		// IPv6リンクローカル
		"fe80::/10",
		// IPv6ユニークローカル
		"fc00::/7",
	}
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("invalid CIDR in blockedNetworks: %s: %v", cidr, err))
		}
		blockedNetworks = append(blockedNetworks, *network)
	}
}

// defaultProbeTimeout は到達性確認のデフォルトタイムアウト。
const defaultProbeTimeout = 5 * time.Second

// ResumeGuardConfig はResumeURLGuardの設定。
type ResumeGuardConfig struct {
	// ProbeEnabled が真の場合、静的検証に加えてURLへの到達性確認を行う。
	ProbeEnabled bool
	// ProbeTimeout は到達性確認のタイムアウト。0以下の場合はデフォルト値を使用する。
	ProbeTimeout time.Duration
}

// resumeURLGuard はResumeURLGuardServiceの実装。
// probeがnilでない場合、静的検証の後に到達性確認を行う。
type resumeURLGuard struct {
	probe func(rawURL string) error
}

// NewResumeURLGuard はResumeURLGuardServiceの新しいインスタンスを生成する。
// 到達性確認が有効な場合はSSRF防止機能付きのHTTPクライアントを構成する。
func NewResumeURLGuard(cfg ResumeGuardConfig) *resumeURLGuard {
	g := &resumeURLGuard{}
	if cfg.ProbeEnabled {
		timeout := cfg.ProbeTimeout
		if timeout <= 0 {
			timeout = defaultProbeTimeout
		}
		client := newSafeClient(timeout)
		g.probe = func(rawURL string) error {
			return probeURL(client, rawURL)
		}
	}
	return g
}

// newSafeClient はSSRF防止機能付きのHTTPクライアントを生成する。
// safeurlはnet.DialerのControlフックでDNS解決後のIPアドレスを検証するため、
// ホスト名が後からプライベートIPに解決されるケースもブロックされる。
func newSafeClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(80, 443).
		Build()

	wrappedClient := safeurl.Client(config)
	return wrappedClient.Client
}

// probeURL はURLにHEADリクエストを送り到達可能かを確認する。
func probeURL(client *http.Client, rawURL string) error {
	resp, err := client.Head(rawURL)
	if err != nil {
		return fmt.Errorf("URL is not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("URL returned status %d", resp.StatusCode)
	}
	return nil
}

// ValidateURL はURLの安全性を検証する。
// DNS解決を伴わない静的検証を常に行い、到達性確認が有効な場合は
// SSRF防止機能付きクライアントで実際のアクセスも確認する。
func (g *resumeURLGuard) ValidateURL(rawURL string) error {
	if err := g.validateStatic(rawURL); err != nil {
		return err
	}
	if g.probe != nil {
		return g.probe(rawURL)
	}
	return nil
}

// validateStatic はDNS解決を伴わない静的な検証を行う。
func (g *resumeURLGuard) validateStatic(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	// スキーム検証: http/httpsのみ許可
	scheme := strings.ToLower(parsed.Scheme)
	if !isAllowedScheme(scheme) {
		return fmt.Errorf("disallowed scheme: %s (allowed: %v)", scheme, allowedSchemes)
	}

	// ホスト検証: 空ホストを拒否
	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("empty host in URL: %s", rawURL)
	}

	// IPアドレスの場合: ブロック対象CIDRとの照合
	ip := net.ParseIP(host)
	if ip != nil {
		if isBlockedIP(ip) {
			return fmt.Errorf("blocked IP address: %s", ip.String())
		}
		return nil
	}

	// ホスト名の場合: localhost等の危険なホスト名を拒否
	if isBlockedHostname(host) {
		return fmt.Errorf("blocked host: %s", host)
	}

	return nil
}

// isAllowedScheme はURLスキームが許可リストに含まれるかを検証する。
func isAllowedScheme(scheme string) bool {
	for _, allowed := range allowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

// isBlockedIP はIPアドレスがブロック対象のネットワーク範囲に含まれるかを検証する。
func isBlockedIP(ip net.IP) bool {
	for _, network := range blockedNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// blockedHostnames はブロック対象のホスト名。
var blockedHostnames = []string{
	"localhost",
}

// isBlockedHostname はホスト名がブロック対象かを検証する。
func isBlockedHostname(host string) bool {
	lower := strings.ToLower(host)
	for _, blocked := range blockedHostnames {
		if lower == blocked {
			return true
		}
	}
	return false
}
