package ledger

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/autoparts-ledger/internal/domain/entity"
	"github.com/jhoicas/autoparts-ledger/pkg/money"
)

// buyerNamespace espacio UUIDv5 para los IDs de comprador.
var buyerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("autoparts-ledger/buyer"))

// NormalizeName clave de agrupación de un nombre: NFC, minúsculas, sin espacios
// al borde y con los espacios internos colapsados.
func NormalizeName(name string) string {
	s := norm.NFC.String(name)
	s = cases.Lower(language.Und).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// BuyerID ID estable del comprador para un nombre (mismo ID para todas sus grafías).
func BuyerID(name string) string {
	return buyerIDFromKey(NormalizeName(name))
}

func buyerIDFromKey(key string) string {
	return uuid.NewSHA1(buyerNamespace, []byte(key)).String()
}

type nameGroup struct {
	normalized string
	variants   []string
}

// mismatchKey clave de las variaciones de nombre del chequeo de consistencia: solo minúsculas
// y sin espacios al borde. Más estricta que NormalizeName, que además colapsa espacios internos.
func mismatchKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// groupNames agrupa nombres exactos por keyOf. names debe venir ordenado;
// los grupos salen ordenados por clave.
func groupNames(names []string, keyOf func(string) string) []nameGroup {
	idx := make(map[string]int)
	var groups []nameGroup
	for _, n := range names {
		k := keyOf(n)
		i, ok := idx[k]
		if !ok {
			idx[k] = len(groups)
			groups = append(groups, nameGroup{normalized: k})
			i = len(groups) - 1
		}
		groups[i].variants = append(groups[i].variants, n)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].normalized < groups[j].normalized })
	return groups
}

// Directory tabla de compradores con identidad estable y alias.
// Resuelve la fragilidad de usar el nombre exacto como clave: "Shohag" y "shohag " son el mismo Buyer.
type Directory struct {
	buyers []entity.Buyer
	byKey  map[string]int
}

// BuildDirectory arma el directorio desde las tres colecciones. El nombre canónico es la grafía
// más usada (a igualdad, la primera en orden alfabético).
func BuildDirectory(sales []*entity.Sale, credits []*entity.StandaloneCredit, payments []*entity.Payment) *Directory {
	usage := make(map[string]int)
	for _, s := range sales {
		if s != nil {
			usage[s.BuyerName]++
		}
	}
	for _, c := range credits {
		if c != nil {
			usage[c.BuyerName]++
		}
	}
	for _, p := range payments {
		if p != nil {
			usage[p.BuyerName]++
		}
	}

	dir := &Directory{byKey: make(map[string]int)}
	for _, g := range groupNames(AllBuyers(sales, credits, payments), NormalizeName) {
		canonical := g.variants[0]
		for _, v := range g.variants[1:] {
			if usage[v] > usage[canonical] {
				canonical = v
			}
		}
		dir.byKey[g.normalized] = len(dir.buyers)
		dir.buyers = append(dir.buyers, entity.Buyer{
			ID:         buyerIDFromKey(g.normalized),
			Name:       canonical,
			Normalized: g.normalized,
			Aliases:    g.variants,
		})
	}
	return dir
}

// Buyers devuelve una copia de los compradores, ordenados por nombre normalizado.
func (d *Directory) Buyers() []entity.Buyer {
	out := make([]entity.Buyer, len(d.buyers))
	copy(out, d.buyers)
	return out
}

// Resolve busca el comprador de un nombre en cualquiera de sus grafías.
func (d *Directory) Resolve(name string) (entity.Buyer, bool) {
	i, ok := d.byKey[NormalizeName(name)]
	if !ok {
		return entity.Buyer{}, false
	}
	return d.buyers[i], true
}

// OutstandingByBuyer suma el saldo por nombre exacto sobre cada comprador canónico.
// Solo incluye compradores con saldo > 0, ordenados por nombre canónico.
func (d *Directory) OutstandingByBuyer(outstanding map[string]decimal.Decimal) []BuyerBalance {
	totals := make(map[string]decimal.Decimal)
	for name, amount := range outstanding {
		b, ok := d.Resolve(name)
		if !ok {
			continue
		}
		totals[b.Name] = money.Add(totals[b.Name], amount)
	}
	return positiveBalances(totals)
}
