package parser

import (
	"regexp"

	"nfscan/internal/domain"
)

var (
	codigoAtividadeRe = regexp.MustCompile(`Código do Serviço.*?:\s*([^-]+?)\s*-\s*(.*)`)
	cnaeRe            = regexp.MustCompile(`CNAE:\s*([^-]+?)\s*-\s*(.*)`)
)

// extrairServico reads the service discrimination block: free-text
// description, service code and activity, CNAE pair and the
// construction-specific detail window (kept whole, label included).
func extrairServico(texto string) *domain.ServicoDetalhe {
	texto = Normalize(texto)

	secao, ok := Secao(texto, "Discriminação dos Serviços", "Tributos Federais", "Detalhamento de Valores")
	if !ok {
		return nil
	}

	descricao, _ := ValorEntre(secao, "Discriminação dos Serviços", "Código do Serviço", "CNAE")
	descricao = Normalize(descricao)

	var codigoServico, atividadeDescricao *string
	if janela, ok := Secao(secao, "Código do Serviço", "CNAE"); ok {
		if m := codigoAtividadeRe.FindStringSubmatch(janela); m != nil {
			codigo := Normalize(m[1])
			atividade := Normalize(m[2])
			codigoServico = &codigo
			atividadeDescricao = &atividade
		}
	}

	var cnae, cnaeDescricao *string
	if janela, ok := Secao(secao, "CNAE:", "Detalhamento"); ok {
		if m := cnaeRe.FindStringSubmatch(janela); m != nil {
			c := Normalize(m[1])
			d := Normalize(m[2])
			cnae = &c
			cnaeDescricao = &d
		}
	}

	var observacoes *string
	if janela, ok := Secao(secao, "Detalhamento Específico", "Tributos Federais"); ok {
		obs := Normalize(janela)
		observacoes = &obs
	}

	return &domain.ServicoDetalhe{
		Descricao:          descricao,
		CodigoServico:      codigoServico,
		AtividadeDescricao: atividadeDescricao,
		CNAE:               cnae,
		CNAEDescricao:      cnaeDescricao,
		Observacoes:        observacoes,
	}
}
