package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bayanihan-ph/relief-backend/internal/clients/redis"
	beneficiaryrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/beneficiary"
	qualificationrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/qualification"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/registry"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

const (
	rosterTTL         = 5 * time.Minute
	rosterKeyPrefix   = "roster:calamity:"
	rosterEnrichLimit = 8
)

// Status filter values accepted by FilterRows.
const (
	StatusAll       = "all"
	StatusClaimed   = "claimed"
	StatusUnclaimed = "unclaimed"
)

// RosterRow is one qualified beneficiary flattened for the dashboard table
// and the print document.
type RosterRow struct {
	Index         int        `json:"index"`
	BeneficiaryID uuid.UUID  `json:"beneficiary_id"`
	Name          string     `json:"name"`
	Age           int        `json:"age"`
	Mobile        string     `json:"mobile"`
	Cost          string     `json:"cost"`
	DonationTypes []string   `json:"donation_types"`
	IsClaimed     bool       `json:"is_claimed"`
	DateClaimed   *time.Time `json:"date_claimed,omitempty"`
	Address       string     `json:"address"`
}

type RosterService interface {
	// Load assembles the qualified-beneficiary roster for one calamity,
	// serving from cache when a fresh copy exists.
	Load(ctx context.Context, calamityID uuid.UUID) ([]RosterRow, error)
	// RenderPrint produces the printable roster document.
	RenderPrint(ctx context.Context, calamityID uuid.UUID) ([]byte, error)
}

type rosterService struct {
	log             *logger.Logger
	calamityRepo    registry.CalamityRepo
	qualification   qualificationrepo.QualificationRepo
	beneficiaryRepo beneficiaryrepo.BeneficiaryRepo
	cache           redis.Store
}

// NewRosterService builds the roster service. cache may be nil; the roster is
// then assembled from the store on every call (the CLI printer runs this way).
func NewRosterService(
	log *logger.Logger,
	calamityRepo registry.CalamityRepo,
	qualification qualificationrepo.QualificationRepo,
	beneficiaryRepo beneficiaryrepo.BeneficiaryRepo,
	cache redis.Store,
) RosterService {
	serviceLog := log.With("service", "RosterService")
	return &rosterService{
		log:             serviceLog,
		calamityRepo:    calamityRepo,
		qualification:   qualification,
		beneficiaryRepo: beneficiaryRepo,
		cache:           cache,
	}
}

func rosterCacheKey(calamityID uuid.UUID) string {
	return rosterKeyPrefix + calamityID.String()
}

func (rs *rosterService) Load(ctx context.Context, calamityID uuid.UUID) ([]RosterRow, error) {
	if rs.cache != nil {
		var cached []RosterRow
		err := rs.cache.GetJSON(ctx, rosterCacheKey(calamityID), &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, types.ErrNotFound) {
			rs.log.Warn("roster cache read failed", "calamity_id", calamityID, "error", err)
		}
	}

	records, err := rs.qualification.ListByCalamity(ctx, nil, calamityID)
	if err != nil {
		return nil, err
	}

	qualified := records[:0:0]
	for _, r := range records {
		if r.IsQualified {
			qualified = append(qualified, r)
		}
	}

	rows := make([]RosterRow, len(qualified))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterEnrichLimit)
	for i, record := range qualified {
		g.Go(func() error {
			b, err := rs.beneficiaryRepo.GetByID(gctx, nil, record.BeneficiaryID)
			if err != nil {
				return fmt.Errorf("enrich roster row %s: %w", record.BeneficiaryID, err)
			}
			rows[i] = rowFromRecord(record, b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	for i := range rows {
		rows[i].Index = i + 1
	}

	if rs.cache != nil {
		if err := rs.cache.PutJSON(ctx, rosterCacheKey(calamityID), rows, rosterTTL); err != nil {
			rs.log.Warn("roster cache write failed", "calamity_id", calamityID, "error", err)
		}
	}
	return rows, nil
}

func rowFromRecord(record *types.QualificationRecord, b *types.Beneficiary) RosterRow {
	address := strings.TrimSpace(strings.Join(nonEmpty(
		b.HouseNumber, b.BrgyAddress, b.City, b.Province), ", "))
	return RosterRow{
		BeneficiaryID: b.ID,
		Name:          strings.TrimSpace(b.FirstName + " " + b.LastName),
		Age:           b.Age,
		Mobile:        b.Mobile,
		Cost:          record.Cost,
		DonationTypes: types.Tags(record.DonationTypes),
		IsClaimed:     record.IsClaimed,
		DateClaimed:   record.DateClaimed,
		Address:       address,
	}
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// FilterRows narrows a roster by claim status and a case-insensitive name
// search. An unrecognized status behaves like StatusAll.
func FilterRows(rows []RosterRow, search, status string) []RosterRow {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]RosterRow, 0, len(rows))
	for _, row := range rows {
		switch status {
		case StatusClaimed:
			if !row.IsClaimed {
				continue
			}
		case StatusUnclaimed:
			if row.IsClaimed {
				continue
			}
		}
		if needle != "" && !strings.Contains(strings.ToLower(row.Name), needle) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// PageSizes are the only sizes the dashboard table offers.
var PageSizes = []int{5, 10}

// Paginate slices rows into the requested page. An unsupported size falls
// back to the smallest offered one; an out-of-range page is clamped.
func Paginate(rows []RosterRow, page, size int) (pageRows []RosterRow, totalPages, currentPage int) {
	valid := false
	for _, s := range PageSizes {
		if size == s {
			valid = true
			break
		}
	}
	if !valid {
		size = PageSizes[0]
	}

	totalPages = (len(rows) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], totalPages, page
}

var printTemplate = template.Must(template.New("roster").Funcs(template.FuncMap{
	"join": func(ss []string) string { return strings.Join(ss, ", ") },
	"claimDate": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Qualified Beneficiaries: {{.CalamityName}}</title>
<style>
body { font-family: sans-serif; margin: 24px; }
h1 { font-size: 18px; }
table { border-collapse: collapse; width: 100%; font-size: 12px; }
th, td { border: 1px solid #444; padding: 4px 8px; text-align: left; }
</style>
</head>
<body>
<h1>Qualified Beneficiaries: {{.CalamityName}}</h1>
<p>Generated {{.GeneratedAt}}</p>
<table>
<tr><th>#</th><th>Name</th><th>Age</th><th>Mobile</th><th>Cost</th><th>Donation Type</th><th>Status</th><th>Date Claimed</th><th>Address</th></tr>
{{range .Rows}}<tr>
<td>{{.Index}}</td>
<td>{{.Name}}</td>
<td>{{.Age}}</td>
<td>{{.Mobile}}</td>
<td>{{.Cost}}</td>
<td>{{join .DonationTypes}}</td>
<td>{{if .IsClaimed}}Claimed{{else}}Unclaimed{{end}}</td>
<td>{{claimDate .DateClaimed}}</td>
<td>{{.Address}}</td>
</tr>{{end}}
</table>
</body>
</html>
`))

func (rs *rosterService) RenderPrint(ctx context.Context, calamityID uuid.UUID) ([]byte, error) {
	calamity, err := rs.calamityRepo.GetByID(ctx, nil, calamityID)
	if err != nil {
		return nil, err
	}
	rows, err := rs.Load(ctx, calamityID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, struct {
		CalamityName string
		GeneratedAt  string
		Rows         []RosterRow
	}{
		CalamityName: calamity.Name,
		GeneratedAt:  time.Now().Format("2006-01-02 15:04"),
		Rows:         rows,
	}); err != nil {
		return nil, fmt.Errorf("render roster: %w", err)
	}
	return buf.Bytes(), nil
}
