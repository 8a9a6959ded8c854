// Package ranking scores job postings by textual similarity to the
// operator's resume using a shared TF-IDF vector space.
package ranking

import (
	"sort"

	"github.com/jonathan/jobscout/internal/textutil"
	"github.com/jonathan/jobscout/internal/types"
)

// emptyDocToken stands in for documents that are empty after normalization,
// so the vectorizer never sees a wholly-empty row. It only ever matches
// other empty documents.
const emptyDocToken = "emptydocumentplaceholder"

// jobDocument returns the text a job contributes to the corpus: its
// description, or title plus organization when the description is empty.
func jobDocument(job types.JobRecord) string {
	doc := textutil.Normalize(job.Description)
	if doc == "" {
		doc = textutil.Normalize(job.Title + " " + job.Organization)
	}
	if doc == "" {
		doc = emptyDocToken
	}
	return doc
}

// Rank scores every job against the resume and returns the topK best
// matches in descending score order. The sort is stable, so equally scored
// jobs keep their original order. An empty job list or non-positive topK
// yields an empty result.
func Rank(resumeText string, jobs []types.JobRecord, topK int) []types.RankedJob {
	if len(jobs) == 0 || topK <= 0 {
		return nil
	}

	resumeDoc := textutil.Normalize(resumeText)
	if resumeDoc == "" {
		resumeDoc = emptyDocToken
	}

	corpus := make([][]string, 0, len(jobs)+1)
	corpus = append(corpus, tokenize(resumeDoc))
	for _, job := range jobs {
		corpus = append(corpus, tokenize(jobDocument(job)))
	}

	v := fitVectorizer(corpus)
	resumeVec := v.transform(corpus[0])

	ranked := make([]types.RankedJob, 0, len(jobs))
	for i, job := range jobs {
		jobVec := v.transform(corpus[i+1])
		ranked = append(ranked, types.RankedJob{
			JobRecord: job,
			Score:     dot(jobVec, resumeVec),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}
	return ranked[:topK]
}
