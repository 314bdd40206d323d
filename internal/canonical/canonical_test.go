package canonical

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfscan/internal/domain"
)

func exemploNFSe() *domain.NFSe {
	numero := "29"
	im := "123456"
	return &domain.NFSe{
		DataHoraEmissao:   time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		Competencia:       "01/2025",
		CodigoVerificacao: "XYZ123",
		NumeroRPS:         "000045",
		LocalPrestacao:    "CIDADE EXEMPLO",
		NumeroNFSe:        &numero,
		Prestador: domain.Empresa{
			RazaoSocial:        "EMPRESA FICTÍCIA LTDA",
			CNPJ:               "12.345.678/0001-90",
			InscricaoMunicipal: &im,
		},
		Tomador: domain.Empresa{
			RazaoSocial: "CLIENTE TESTE S.A.",
			CNPJ:        "98.765.432/0001-55",
		},
		Servico: domain.ServicoDetalhe{Descricao: "Serviços de teste"},
		Valores: domain.Valores{
			ValorServicos: decimal.NewFromInt(1500),
			ValorLiquido:  decimal.NewFromInt(1500),
			BaseCalculo:   decimal.NewFromInt(1500),
			Aliquota:      decimal.RequireFromString("0.02"),
			ValorISS:      decimal.NewFromInt(30),
		},
	}
}

func TestEncode(t *testing.T) {
	data, err := Encode(exemploNFSe())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"valor_servicos":1500`)
	assert.Contains(t, s, `"aliquota":0.02`)
	assert.Contains(t, s, `"numero_nfse":"29"`)
	assert.Contains(t, s, `"data_hora_emissao":"2025-01-01T09:00:00Z"`)
	assert.Contains(t, s, `"razao_social":"EMPRESA FICTÍCIA LTDA"`)
	assert.Contains(t, s, `"nfse_substituida":null`)
	assert.Contains(t, s, `"inscricao_estadual":null`)
	assert.NotContains(t, s, `"valor_servicos":"1500"`)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := exemploNFSe()

	data, err := Encode(original)
	require.NoError(t, err)

	decodificado, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, original.CodigoVerificacao, decodificado.CodigoVerificacao)
	assert.Equal(t, original.Competencia, decodificado.Competencia)
	require.NotNil(t, decodificado.NumeroNFSe)
	assert.Equal(t, "29", *decodificado.NumeroNFSe)
	assert.Nil(t, decodificado.NFSeSubstituida)
	assert.True(t, original.DataHoraEmissao.Equal(decodificado.DataHoraEmissao))
	assert.Equal(t, original.Prestador.RazaoSocial, decodificado.Prestador.RazaoSocial)
	assert.True(t, original.Valores.ValorServicos.Equal(decodificado.Valores.ValorServicos))
	assert.True(t, original.Valores.Aliquota.Equal(decodificado.Valores.Aliquota))
	assert.True(t, decodificado.TributosFederais.PIS.IsZero())
}

func TestEncodeIndent(t *testing.T) {
	data, err := EncodeIndent(exemploNFSe())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"competencia\": \"01/2025\"")
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte("{notjson"))
	assert.Error(t, err)
}
