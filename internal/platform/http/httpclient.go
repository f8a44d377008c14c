// Package http は外向きHTTPクライアントの共通設定を提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient はリソースAPI呼び出し用のHTTPクライアントを作成します。
//
// ダッシュボードは単一ホストへ周期的に接続するため、ホストごとのアイドル接続を多めに保持します。
// http.DefaultClient にはタイムアウトが無いので常にこちらを使うこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
