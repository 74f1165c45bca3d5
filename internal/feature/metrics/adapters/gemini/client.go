// Package gemini はGoogle Gemini APIによるシンボル解決と企業概要翻訳のクライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"stockmanager/internal/feature/metrics/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	// symbolPromptTemplate は企業名からシンボルを解決するプロンプトです。
	// 数字またはアルファベットのみで返答させ、企業と判断できない入力には
	// センチネル"Invalid"を返させます。
	symbolPromptTemplate = "%sの企業コード、またはティッカーを教えて。" +
		"すでに企業コード、ティッカーの場合は、渡された値をそのまま返答してください。" +
		"企業や銘柄と判断できない場合は Invalid とだけ返答してください。" +
		"数字、またはアルファベットだけで返答してください。"

	// translatePromptTemplate は企業概要を日本語に翻訳するプロンプトです。
	translatePromptTemplate = "次の企業概要を自然な日本語に翻訳してください。翻訳文だけを返答してください。\n\n%s"
)

// Client はGemini APIを使ったSymbolResolver兼Translator実装です。
type Client struct {
	client *genai.Client
	model  string
}

// ClientがSymbolResolverとTranslatorを実装していることをコンパイル時に検証します。
var (
	_ usecase.SymbolResolver = (*Client)(nil)
	_ usecase.Translator     = (*Client)(nil)
)

// NewClient はADCを使用してClientの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewClient(ctx context.Context) (*Client, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: client, model: DefaultModel}, nil
}

// Resolve は企業名を正規のシンボルトークンに解決します。
// モデルの返答は自由形式のため、前後の空白を落として返します。
func (c *Client) Resolve(ctx context.Context, companyName string) (string, error) {
	prompt := fmt.Sprintf(symbolPromptTemplate, companyName)
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Translate は企業概要テキストを日本語に翻訳します。
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(translatePromptTemplate, text)
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
