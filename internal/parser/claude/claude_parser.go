package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nfscan/internal/config"
	"nfscan/internal/domain"
	"nfscan/internal/parser"
	"nfscan/internal/port"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

func init() {
	parser.RegisterStrategy("claude", func(cfg *config.ParserConfig) (port.InvoiceParser, error) {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("claude strategy requires an API key")
		}
		return NewParser(cfg), nil
	})
}

// Parser implements port.InvoiceParser using the Anthropic Messages API.
type Parser struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewParser creates a Claude-based invoice parser from a parser config.
func NewParser(cfg *config.ParserConfig) *Parser {
	return newParser(cfg, apiURL)
}

// NewParserWithEndpoint creates a parser pointing at a custom API endpoint (for testing).
func NewParserWithEndpoint(cfg *config.ParserConfig, endpoint string) *Parser {
	return newParser(cfg, endpoint)
}

func newParser(cfg *config.ParserConfig, endpoint string) *Parser {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Parser{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Parse sends the document text to the Messages API and maps the returned
// JSON into the invoice record, applying the same default policy as the
// deterministic parser.
func (p *Parser) Parse(ctx context.Context, texto string) (*domain.NFSe, error) {
	reqBody := map[string]interface{}{
		"model":      p.model,
		"max_tokens": 4000,
		"system":     parser.BuildNFSePrompt(),
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": parser.UserPreamble + "\n\n" + texto,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := parser.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, parser.NewRateLimitError("claude", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte) (*domain.NFSe, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	if resp.StopReason == "max_tokens" {
		return nil, fmt.Errorf("output truncated (stop_reason: max_tokens): response exceeded output token limit")
	}

	// Models occasionally fence the JSON despite the prompt.
	text := resp.Content[0].Text
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	var payload nfsePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	return payload.toModel(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// nfsePayload mirrors the JSON the prompt asks for. Everything is optional on
// the wire; toModel applies the defaults.
type nfsePayload struct {
	DataHoraEmissao   *string          `json:"data_hora_emissao"`
	Competencia       *string          `json:"competencia"`
	CodigoVerificacao *string          `json:"codigo_verificacao"`
	NumeroRPS         *string          `json:"numero_rps"`
	LocalPrestacao    *string          `json:"local_prestacao"`
	NumeroNFSe        *string          `json:"numero_nfse"`
	Origem            *string          `json:"origem"`
	Orgao             *string          `json:"orgao"`
	NFSeSubstituida   *string          `json:"nfse_substituida"`
	Prestador         *empresaPayload  `json:"prestador"`
	Tomador           *empresaPayload  `json:"tomador"`
	Servico           *servicoPayload  `json:"servico"`
	Valores           *valoresPayload  `json:"valores"`
	TributosFederais  *tributosPayload `json:"tributos_federais"`
}

type empresaPayload struct {
	RazaoSocial        *string          `json:"razao_social"`
	CNPJ               *string          `json:"cnpj"`
	InscricaoMunicipal *string          `json:"inscricao_municipal"`
	InscricaoEstadual  *string          `json:"inscricao_estadual"`
	NomeFantasia       *string          `json:"nome_fantasia"`
	Endereco           *enderecoPayload `json:"endereco"`
	Contato            *contatoPayload  `json:"contato"`
}

type enderecoPayload struct {
	Logradouro *string `json:"logradouro"`
	Numero     *string `json:"numero"`
	Bairro     *string `json:"bairro"`
	CEP        *string `json:"cep"`
	Municipio  *string `json:"municipio"`
	UF         *string `json:"uf"`
}

type contatoPayload struct {
	Telefone *string `json:"telefone"`
	Email    *string `json:"email"`
}

type servicoPayload struct {
	Descricao          *string `json:"descricao"`
	CodigoServico      *string `json:"codigo_servico"`
	AtividadeDescricao *string `json:"atividade_descricao"`
	CNAE               *string `json:"cnae"`
	CNAEDescricao      *string `json:"cnae_descricao"`
	Observacoes        *string `json:"observacoes"`
}

type valoresPayload struct {
	ValorServicos     *decimal.Decimal `json:"valor_servicos"`
	Desconto          *decimal.Decimal `json:"desconto"`
	ValorLiquido      *decimal.Decimal `json:"valor_liquido"`
	BaseCalculo       *decimal.Decimal `json:"base_calculo"`
	Aliquota          *decimal.Decimal `json:"aliquota"`
	ValorISS          *decimal.Decimal `json:"valor_iss"`
	OutrasRetencoes   *decimal.Decimal `json:"outras_retencoes"`
	RetencoesFederais *decimal.Decimal `json:"retencoes_federais"`
}

type tributosPayload struct {
	PIS    *decimal.Decimal `json:"pis"`
	COFINS *decimal.Decimal `json:"cofins"`
	IR     *decimal.Decimal `json:"ir"`
	INSS   *decimal.Decimal `json:"inss"`
	CSLL   *decimal.Decimal `json:"csll"`
}

func (p *nfsePayload) toModel() *domain.NFSe {
	agora := time.Now()

	nfse := &domain.NFSe{
		DataHoraEmissao:   parseISODate(p.DataHoraEmissao),
		Competencia:       orDefault(p.Competencia, agora.Format("01/2006")),
		CodigoVerificacao: orDefault(p.CodigoVerificacao, domain.NaoDisponivel),
		NumeroRPS:         orDefault(p.NumeroRPS, domain.NaoDisponivel),
		LocalPrestacao:    orDefault(p.LocalPrestacao, domain.NaoDisponivel),
		NumeroNFSe:        p.NumeroNFSe,
		Origem:            p.Origem,
		Orgao:             p.Orgao,
		NFSeSubstituida:   p.NFSeSubstituida,
		Prestador:         toEmpresa(p.Prestador),
		Tomador:           toEmpresa(p.Tomador),
	}

	if p.Servico != nil {
		nfse.Servico = domain.ServicoDetalhe{
			Descricao:          orDefault(p.Servico.Descricao, domain.NaoDisponivel),
			CodigoServico:      p.Servico.CodigoServico,
			AtividadeDescricao: p.Servico.AtividadeDescricao,
			CNAE:               p.Servico.CNAE,
			CNAEDescricao:      p.Servico.CNAEDescricao,
			Observacoes:        p.Servico.Observacoes,
		}
	} else {
		nfse.Servico = domain.ServicoDetalhe{Descricao: domain.NaoDisponivel}
	}

	if p.Valores != nil {
		nfse.Valores = domain.Valores{
			ValorServicos:     orZero(p.Valores.ValorServicos),
			Desconto:          orZero(p.Valores.Desconto),
			ValorLiquido:      orZero(p.Valores.ValorLiquido),
			BaseCalculo:       orZero(p.Valores.BaseCalculo),
			Aliquota:          orZero(p.Valores.Aliquota),
			ValorISS:          orZero(p.Valores.ValorISS),
			OutrasRetencoes:   orZero(p.Valores.OutrasRetencoes),
			RetencoesFederais: orZero(p.Valores.RetencoesFederais),
		}
	}

	if p.TributosFederais != nil {
		nfse.TributosFederais = domain.TributosFederais{
			PIS:    orZero(p.TributosFederais.PIS),
			COFINS: orZero(p.TributosFederais.COFINS),
			IR:     orZero(p.TributosFederais.IR),
			INSS:   orZero(p.TributosFederais.INSS),
			CSLL:   orZero(p.TributosFederais.CSLL),
		}
	}

	return nfse
}

func toEmpresa(e *empresaPayload) domain.Empresa {
	if e == nil {
		return domain.Empresa{RazaoSocial: domain.NaoDisponivel, CNPJ: domain.NaoDisponivel}
	}

	empresa := domain.Empresa{
		RazaoSocial:        orDefault(e.RazaoSocial, domain.NaoDisponivel),
		CNPJ:               orDefault(e.CNPJ, domain.NaoDisponivel),
		InscricaoMunicipal: e.InscricaoMunicipal,
		InscricaoEstadual:  e.InscricaoEstadual,
		NomeFantasia:       e.NomeFantasia,
	}

	if e.Endereco != nil {
		empresa.Endereco = &domain.Endereco{
			Logradouro: orDefault(e.Endereco.Logradouro, ""),
			Numero:     orDefault(e.Endereco.Numero, ""),
			Bairro:     e.Endereco.Bairro,
			CEP:        e.Endereco.CEP,
			Municipio:  e.Endereco.Municipio,
			UF:         e.Endereco.UF,
		}
	}

	if e.Contato != nil && (e.Contato.Telefone != nil || e.Contato.Email != nil) {
		empresa.Contato = &domain.Contato{
			Telefone: e.Contato.Telefone,
			Email:    e.Contato.Email,
		}
	}

	return empresa
}

// parseISODate accepts the date shapes models actually emit; anything else
// falls back to the current time, same as a missing date.
func parseISODate(s *string) time.Time {
	if s == nil || *s == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return t
		}
	}
	return time.Now()
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
