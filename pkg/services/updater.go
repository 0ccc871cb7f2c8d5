package services

import (
	"sort"

	"github.com/kerbaras/logolink/pkg/data"
	"github.com/kerbaras/logolink/pkg/sources"
	"github.com/kerbaras/logolink/pkg/utils"
)

// UpdateLogos points every chapter whose logo is present in inv at its local
// copy. doc is left untouched; the returned document carries the changes.
//
// Chapters without a logoUrl are skipped. A logoUrl that already equals the
// local path is resolved again from the title, so a second run over the same
// inventory reproduces the same document.
func UpdateLogos(doc *data.Document, inv sources.Inventory, prefix string) (*data.Document, data.Report, error) {
	out := doc.Clone()
	report := data.Report{
		Available: inv.Len(),
		Results:   make([]data.Result, 0, len(out.Chapters)),
	}

	for i, chapter := range out.Chapters {
		res := data.Result{
			Index:       i,
			ChapterID:   chapter.DisplayID(),
			Title:       chapter.TitleText(),
			OriginalURL: chapter.LogoURLText(),
		}

		if res.OriginalURL == "" {
			res.Outcome = data.OutcomeSkipped
			report.Add(res)
			continue
		}

		res.ExpectedFilename = utils.ExpectedFilename(res.Title, res.OriginalURL)
		res.LocalPath = prefix + res.ExpectedFilename
		res.AlreadyLocal = res.OriginalURL == res.LocalPath

		if !inv.Has(res.ExpectedFilename) {
			res.Outcome = data.OutcomeMissing
			report.Add(res)
			continue
		}

		if !res.AlreadyLocal {
			if err := out.SetLogoURL(i, res.LocalPath); err != nil {
				return nil, data.Report{}, err
			}
		}
		res.Outcome = data.OutcomeUpdated
		report.Add(res)
	}

	return out, report, nil
}

// Orphans lists inventory files no chapter resolves to.
func Orphans(doc *data.Document, inv sources.Inventory) []string {
	referenced := make(map[string]struct{}, len(doc.Chapters))
	for _, chapter := range doc.Chapters {
		url := chapter.LogoURLText()
		if url == "" {
			continue
		}
		referenced[utils.ExpectedFilename(chapter.TitleText(), url)] = struct{}{}
	}

	var orphans []string
	for name := range inv {
		if _, ok := referenced[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	return orphans
}
