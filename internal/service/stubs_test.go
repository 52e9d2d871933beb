package service

// Stubs em memória dos repositórios, para testar as regras de negócio sem
// Postgres. O caminho com banco de verdade é coberto pelos testes de
// integração em tests/e2e.

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/email-do-dev/prodata/internal/model"
	"github.com/email-do-dev/prodata/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Ordens ────────────────────────────────────────────────────────────────────

type stubOrdemRepo struct {
	mu     sync.Mutex
	ordens map[uuid.UUID]*model.Ordem
}

func newStubOrdemRepo() *stubOrdemRepo {
	return &stubOrdemRepo{ordens: make(map[uuid.UUID]*model.Ordem)}
}

// Transaction serializa com o mutex, espelhando o advisory lock que o repo
// real toma dentro da transação de criação.
func (r *stubOrdemRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(nil)
}

func (r *stubOrdemRepo) List(_ context.Context) ([]repository.OrdemComLinha, error) {
	rows := make([]repository.OrdemComLinha, 0, len(r.ordens))
	for _, o := range r.ordens {
		rows = append(rows, repository.OrdemComLinha{Ordem: *o})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DataCriacao.After(rows[j].DataCriacao) })
	return rows, nil
}

func (r *stubOrdemRepo) FindComLinha(_ context.Context, id uuid.UUID) (*repository.OrdemComLinha, error) {
	o, ok := r.ordens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &repository.OrdemComLinha{Ordem: *o}, nil
}

func (r *stubOrdemRepo) Create(_ context.Context, _ *gorm.DB, o *model.Ordem) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.DataCriacao.IsZero() {
		o.DataCriacao = time.Now()
	}
	r.ordens[o.ID] = o
	return nil
}

func (r *stubOrdemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ordem, error) {
	o, ok := r.ordens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrdemRepo) Save(_ context.Context, o *model.Ordem) error {
	r.ordens[o.ID] = o
	return nil
}

func (r *stubOrdemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ordens, id)
	return nil
}

var codigoSufixo = regexp.MustCompile(`-(\d+)$`)

func (r *stubOrdemRepo) ProximoCodigo(_ context.Context, _ *gorm.DB, dia time.Time) (string, error) {
	prefixo := "OP-" + dia.Format("20060102")
	ultimo := 0
	for _, o := range r.ordens {
		if len(o.Codigo) < len(prefixo) || o.Codigo[:len(prefixo)] != prefixo {
			continue
		}
		if m := codigoSufixo.FindStringSubmatch(o.Codigo); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > ultimo {
				ultimo = n
			}
		}
	}
	return fmt.Sprintf("%s-%03d", prefixo, ultimo+1), nil
}

var _ repository.OrdemRepository = (*stubOrdemRepo)(nil)

// ── Subetapas ─────────────────────────────────────────────────────────────────

type stubSubetapaRepo struct {
	subetapas map[uuid.UUID]*model.Subetapa
	pesos     *stubPesoRepo // opcional, para agregados e rendimento
}

func newStubSubetapaRepo(pesos *stubPesoRepo) *stubSubetapaRepo {
	return &stubSubetapaRepo{subetapas: make(map[uuid.UUID]*model.Subetapa), pesos: pesos}
}

func (r *stubSubetapaRepo) porOrdem(ordemID uuid.UUID) []*model.Subetapa {
	var subs []*model.Subetapa
	for _, s := range r.subetapas {
		if s.OrdemProducaoID == ordemID {
			subs = append(subs, s)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].NumeroEtapa < subs[j].NumeroEtapa })
	return subs
}

func (r *stubSubetapaRepo) pesoTotal(subetapaID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	if r.pesos == nil {
		return total
	}
	for _, p := range r.pesos.pesos {
		if p.SubetapaID == subetapaID {
			total = total.Add(p.PesoKg)
		}
	}
	return total
}

func (r *stubSubetapaRepo) ListByOrdem(_ context.Context, ordemID uuid.UUID) ([]repository.SubetapaComAgregados, error) {
	var rows []repository.SubetapaComAgregados
	for _, s := range r.porOrdem(ordemID) {
		rows = append(rows, repository.SubetapaComAgregados{
			Subetapa:  *s,
			PesoTotal: r.pesoTotal(s.ID),
		})
	}
	return rows, nil
}

func (r *stubSubetapaRepo) Create(_ context.Context, _ *gorm.DB, s *model.Subetapa) error {
	for _, existente := range r.subetapas {
		if existente.OrdemProducaoID == s.OrdemProducaoID && existente.NumeroEtapa == s.NumeroEtapa {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.DataCriacao.IsZero() {
		s.DataCriacao = time.Now()
	}
	r.subetapas[s.ID] = s
	return nil
}

func (r *stubSubetapaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Subetapa, error) {
	s, ok := r.subetapas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSubetapaRepo) Save(_ context.Context, s *model.Subetapa) error {
	r.subetapas[s.ID] = s
	return nil
}

func (r *stubSubetapaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.subetapas, id)
	return nil
}

func (r *stubSubetapaRepo) MaxNumeroIntermediario(_ context.Context, ordemID uuid.UUID) (int, error) {
	max := 0
	for _, s := range r.porOrdem(ordemID) {
		if s.NumeroEtapa != model.NumeroSaida && s.NumeroEtapa > max {
			max = s.NumeroEtapa
		}
	}
	return max, nil
}

func (r *stubSubetapaRepo) CountAtivas(_ context.Context, ordemID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.porOrdem(ordemID) {
		if s.Ativa {
			n++
		}
	}
	return n, nil
}

func (r *stubSubetapaRepo) PesosPorEtapaAtiva(_ context.Context, ordemID uuid.UUID) ([]repository.PesoPorEtapa, error) {
	var rows []repository.PesoPorEtapa
	for _, s := range r.porOrdem(ordemID) {
		if !s.Ativa {
			continue
		}
		rows = append(rows, repository.PesoPorEtapa{
			NumeroEtapa: s.NumeroEtapa,
			Descricao:   s.Descricao,
			ItemCodigo:  s.ItemCodigo,
			PesoTotal:   r.pesoTotal(s.ID),
		})
	}
	return rows, nil
}

var _ repository.SubetapaRepository = (*stubSubetapaRepo)(nil)

// ── Pesos ─────────────────────────────────────────────────────────────────────

type stubPesoRepo struct {
	pesos map[uuid.UUID]*model.RegistroPeso
}

func newStubPesoRepo() *stubPesoRepo {
	return &stubPesoRepo{pesos: make(map[uuid.UUID]*model.RegistroPeso)}
}

func (r *stubPesoRepo) ListBySubetapa(_ context.Context, subetapaID uuid.UUID) ([]repository.PesoComContexto, error) {
	var rows []repository.PesoComContexto
	for _, p := range r.pesos {
		if p.SubetapaID == subetapaID {
			rows = append(rows, repository.PesoComContexto{RegistroPeso: *p})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DataRegistro.After(rows[j].DataRegistro) })
	return rows, nil
}

func (r *stubPesoRepo) Create(_ context.Context, p *model.RegistroPeso) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.DataRegistro.IsZero() {
		p.DataRegistro = time.Now()
	}
	r.pesos[p.ID] = p
	return nil
}

func (r *stubPesoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RegistroPeso, error) {
	p, ok := r.pesos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPesoRepo) Save(_ context.Context, p *model.RegistroPeso) error {
	r.pesos[p.ID] = p
	return nil
}

func (r *stubPesoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pesos, id)
	return nil
}

func (r *stubPesoRepo) CountBySubetapa(_ context.Context, subetapaID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.pesos {
		if p.SubetapaID == subetapaID {
			n++
		}
	}
	return n, nil
}

var _ repository.PesoRepository = (*stubPesoRepo)(nil)

// ── Linhas ────────────────────────────────────────────────────────────────────

type stubLinhaRepo struct {
	linhas map[uuid.UUID]*model.LinhaProducao
}

func newStubLinhaRepo() *stubLinhaRepo {
	return &stubLinhaRepo{linhas: make(map[uuid.UUID]*model.LinhaProducao)}
}

func (r *stubLinhaRepo) add(nome string) uuid.UUID {
	l := &model.LinhaProducao{ID: uuid.New(), Nome: nome, Ativa: true}
	r.linhas[l.ID] = l
	return l.ID
}

func (r *stubLinhaRepo) ListAtivas(_ context.Context) ([]model.LinhaProducao, error) {
	var out []model.LinhaProducao
	for _, l := range r.linhas {
		if l.Ativa {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLinhaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LinhaProducao, error) {
	l, ok := r.linhas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubLinhaRepo) IncrementSubetapas(_ context.Context, id uuid.UUID, delta int) error {
	l, ok := r.linhas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.NumSubetapas += delta
	if l.NumSubetapas < 0 {
		l.NumSubetapas = 0
	}
	return nil
}

var _ repository.LinhaRepository = (*stubLinhaRepo)(nil)

// ── Notificador ───────────────────────────────────────────────────────────────

type stubNotificador struct {
	fechadas []string
}

func (n *stubNotificador) NotificarOrdemFechada(_ context.Context, ordem *model.Ordem) {
	n.fechadas = append(n.fechadas, ordem.Codigo)
}
