package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecao(t *testing.T) {
	texto := "Cabeçalho Dados do Prestador Razão Social: X Dados do Tomador Razão Social: Y Discriminação dos Serviços fim"

	t.Run("bounded by earliest end anchor", func(t *testing.T) {
		s, ok := Secao(texto, "Dados do Prestador", "Dados do Tomador")
		require.True(t, ok)
		assert.Equal(t, "Dados do Prestador Razão Social: X", s)
	})

	t.Run("runs to end of text without anchor", func(t *testing.T) {
		s, ok := Secao(texto, "Discriminação dos Serviços", "Tributos Federais")
		require.True(t, ok)
		assert.Equal(t, "Discriminação dos Serviços fim", s)
	})

	t.Run("absent start anchor", func(t *testing.T) {
		_, ok := Secao(texto, "Tributos Federais", "Avisos")
		assert.False(t, ok)
	})
}

func TestValorEntre(t *testing.T) {
	texto := "Data/Hora Emissão: 01/01/2025 09:00 Competência: 01/2025 Código de Verificação: XYZ123"

	t.Run("value between labels", func(t *testing.T) {
		v, ok := ValorEntre(texto, "Data/Hora Emissão:", "Competência")
		require.True(t, ok)
		assert.Equal(t, "01/01/2025 09:00", v)
	})

	t.Run("value to end of text", func(t *testing.T) {
		v, ok := ValorEntre(texto, "Código de Verificação:", "Número do RPS")
		require.True(t, ok)
		assert.Equal(t, "XYZ123", v)
	})

	t.Run("optional colon after label", func(t *testing.T) {
		v, ok := ValorEntre("Endereço: RUA A, 10 Telefone: 123", "Endereço", "Telefone")
		require.True(t, ok)
		assert.Equal(t, "RUA A, 10", v)
	})

	t.Run("absent label", func(t *testing.T) {
		_, ok := ValorEntre(texto, "Local da Prestação:", "Dados do Prestador")
		assert.False(t, ok)
	})
}

func TestValorAposRotulo(t *testing.T) {
	t.Run("stops at next capitalized label", func(t *testing.T) {
		v := ValorAposRotulo("Razão Social: EMPRESA X LTDA CNPJ: 12.345.678/0001-90", "Razão Social")
		require.NotNil(t, v)
		assert.Equal(t, "EMPRESA X LTDA", *v)
	})

	t.Run("runs to end without next label", func(t *testing.T) {
		v := ValorAposRotulo("Email: contato@empresa.com", "Email")
		require.NotNil(t, v)
		assert.Equal(t, "contato@empresa.com", *v)
	})

	t.Run("accented words do not terminate the value", func(t *testing.T) {
		v := ValorAposRotulo("Inscrição Municipal: 123456 Inscrição Estadual: 888", "Inscrição Municipal")
		require.NotNil(t, v)
		assert.Equal(t, "123456 Inscrição", *v)
	})

	t.Run("value holding a colon means absent", func(t *testing.T) {
		assert.Nil(t, ValorAposRotulo("Telefone: ver contato: 123", "Telefone"))
	})

	t.Run("absent label", func(t *testing.T) {
		assert.Nil(t, ValorAposRotulo("CNPJ: 123", "Razão Social"))
	})

	t.Run("empty value", func(t *testing.T) {
		assert.Nil(t, ValorAposRotulo("Razão Social: CNPJ: 123", "Razão Social"))
	})
}
