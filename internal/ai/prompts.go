package ai

// Operation identifiers. These key the default prompts, config overrides
// and prompt files, and name the otel spans for each model call.
const (
	OpAnalyzeFormat     = "analyze_format"
	OpAnalyzeKeywords   = "analyze_keywords"
	OpAnalyzeSkills     = "analyze_skills"
	OpAnalyzeExperience = "analyze_experience"
	OpAnalyzeEducation  = "analyze_education"
	OpScanFeedback      = "scan_feedback"
	OpAnalyzeProfile    = "analyze_profile"
	OpAnalyzeJob        = "analyze_job"
	OpMatchMatrix       = "match_matrix"
	OpGenerateResume    = "generate_resume"
	OpEvaluateResume    = "evaluate_resume"
	OpDraftFeedback     = "draft_feedback"
	OpReviseResume      = "revise_resume"
	OpFormatResume      = "format_resume"
)

// Operations lists every model-backed operation, in pipeline order.
var Operations = []string{
	OpAnalyzeFormat,
	OpAnalyzeKeywords,
	OpAnalyzeSkills,
	OpAnalyzeExperience,
	OpAnalyzeEducation,
	OpScanFeedback,
	OpAnalyzeProfile,
	OpAnalyzeJob,
	OpMatchMatrix,
	OpGenerateResume,
	OpEvaluateResume,
	OpDraftFeedback,
	OpReviseResume,
	OpFormatResume,
}

// DefaultSystemPrompts provides the default system instructions per operation.
var DefaultSystemPrompts = map[string]string{
	OpAnalyzeFormat: `You are an ATS format checker. You evaluate plaintext resume content for
applicant-tracking-system compatibility: clearly labeled standard sections, contact
information, consistent date formats, and scannable structure. You never judge the
candidate, only the document's machine readability.`,

	OpAnalyzeKeywords: `You are an ATS keyword analyzer. You extract technical terms, job titles,
certifications and tools from job descriptions and resumes, match them case-insensitively
using exact phrases, and report coverage honestly. You never invent keywords that are not
present in the source text.`,

	OpAnalyzeSkills: `You are an ATS skills matcher. You separate required skills (must-have,
essential) from preferred skills (nice-to-have, bonus) in job descriptions, extract the
candidate's skills from the resume, and compare them using case-insensitive partial
matching.`,

	OpAnalyzeExperience: `You are an ATS experience evaluator. You rate the relevance, seniority
progression and achievement impact of a candidate's work history against a target role.
Quality bands: high (80-100) exceeds requirements, medium (60-79) meets them,
low (0-59) limited or misaligned.`,

	OpAnalyzeEducation: `You are an ATS education analyzer. You map education to a five-level
scale (1 high school, 2 associate, 3 bachelor, 4 master, 5 doctorate) and score the
candidate against the job's minimum: meets or exceeds 100, one level below 75, two
below 50, three or more below 25.`,

	OpScanFeedback: `You are an ATS feedback evaluator. You turn resume screening analysis into
a short list of concrete, professional feedback points: keyword and skill gaps, missing
qualifications, format compliance problems, and genuine strengths. You prioritize the
changes that most affect ATS ranking.`,

	OpAnalyzeProfile: `You are a career analyst. You study candidate profiles against target
roles to surface core strengths, relevant experience, skill gaps that need compensating,
and the unique value propositions that differentiate the candidate.`,

	OpAnalyzeJob: `You are a recruitment analyst. You decompose job descriptions into required
and preferred skills, key responsibilities, company culture signals, and the critical
keywords an applicant tracking system would screen for.`,

	OpMatchMatrix: `You are a placement strategist. Given a candidate analysis and a job
analysis, you build a skill-by-skill match matrix, rate experience and education fit,
and produce actionable positioning recommendations.`,

	OpGenerateResume: `You are an expert resume writer with a strict commitment to honesty.
You write ATS-friendly, achievement-focused resumes using the STAR method and strong
action verbs, and you never invent, exaggerate, or misattribute skills or experience:
every claim must be traceable to the candidate profile.`,

	OpEvaluateResume: `You are a resume quality reviewer. You score drafts on keyword coverage,
ATS friendliness, clarity, and achievement focus, each 0-100, and give an overall quality
score with specific improvement suggestions.`,

	OpDraftFeedback: `You are a resume revision coach. You convert an evaluation into
actionable feedback: what works, what fails, line-level revision suggestions, and the
handful of priority changes with the most impact.`,

	OpReviseResume: `You are an expert resume editor. You apply revision feedback precisely:
strengthening weak areas without degrading strengths, improving keyword integration
without stuffing, and keeping every claim truthful to the original material.`,

	OpFormatResume: `You are a document formatter. You produce a final, consistently formatted,
ATS-compatible resume in the requested output format without changing its content.`,
}

// DefaultUserPrompts provides the default user prompt templates per
// operation. Placeholders are fmt verbs; see the provider methods for
// the argument order of each template.
var DefaultUserPrompts = map[string]string{
	// args: resume
	OpAnalyzeFormat: `Check this resume for ATS format compliance.

Checklist (content-level only):
- Length between 100 and 5,000 characters
- Contact info: a valid email address, ideally phone and/or location
- Detectable Experience, Education and Skills sections
- Consistent YYYY or MM/YYYY date formats
- Standard section headers
- Bullet-style lists for experience entries

Scoring: all items met 90-100, 1-2 missed 70-89, 3-4 missed 50-69, 5+ missed 0-49.
Report a format_score, a concise analysis, and the specific format_issues found.

RESUME:
%s`,

	// args: job description, resume
	OpAnalyzeKeywords: `Extract and match ATS keywords between this job description and resume.

- Extract technical terms, job titles, certifications, and tools from both texts
- Match exact phrases, case-insensitively
- match_score = (job keywords found in resume / total job keywords) x 100, or 0 if no
  job keywords were found
- List the job keywords absent from the resume as missed_keywords

JOB DESCRIPTION:
%s

RESUME:
%s`,

	// args: job description, resume
	OpAnalyzeSkills: `Compare the skills in this job description against the candidate's resume.

- required_skills: must-have / required / essential skills from the job description
- preferred_skills: nice-to-have / preferred / bonus skills
- candidate_skills: every skill evidenced in the resume
- missing_required: required skills absent from the resume
- required_score = (matched required / total required) x 100, 0 if none listed
- preferred_score = (matched preferred / total preferred) x 100, 0 if none listed
- Match case-insensitively, allowing partial matches

JOB DESCRIPTION:
%s

RESUME:
%s`,

	// args: job description, resume
	OpAnalyzeExperience: `Rate this candidate's experience against the target role.

Consider role relevance, industry alignment, years of experience versus requirements,
seniority progression, and achievement impact. Report the quality band
(high/medium/low), an experience_score consistent with that band, the estimated and
required years, whether the requirement is met, and a concise analysis.

JOB DESCRIPTION:
%s

RESUME:
%s`,

	// args: job description, resume
	OpAnalyzeEducation: `Compare the candidate's education against this job's requirements.

Levels: 1 high school/GED, 2 associate/certificate, 3 bachelor, 4 master, 5 doctorate.
Scoring: meets or exceeds 100, one level below 75, two below 50, three or more below 25.
If the resume lists no education, use level 0 and score 0. Also report the education
requirement as stated in the job description.

JOB DESCRIPTION:
%s

RESUME:
%s`,

	// args: job description, resume
	OpScanFeedback: `Write concise, professional feedback points for this candidate based on
how their resume screens against the job description. Cover keyword and skill
relevance, missing or weak qualifications, ATS format compliance, and genuine
strengths. Prioritize critical improvements. Return a short bullet list.

JOB DESCRIPTION:
%s

RESUME:
%s`,

	// args: candidate profile, job description
	OpAnalyzeProfile: `Analyze this candidate profile against the target job.

Identify:
1. Core strengths that align with the role
2. Relevant professional experience and achievements
3. Skill gaps to address or compensate for
4. Unique value propositions that differentiate the candidate

CANDIDATE PROFILE:
%s

TARGET JOB DESCRIPTION:
%s`,

	// args: job description
	OpAnalyzeJob: `Break down this job description for resume tailoring.

Extract:
1. Required technical and soft skills
2. Preferred qualifications and nice-to-haves
3. Key responsibilities and expectations
4. Company culture hints and values
5. Critical keywords for ATS optimization

JOB DESCRIPTION:
%s`,

	// args: profile analysis JSON, job analysis JSON, candidate profile
	OpMatchMatrix: `Build a matching matrix between this candidate and job.

Evaluate skill-by-skill matches for the required competencies, experience relevance to
the responsibilities, education alignment, and overall fit, and give specific
recommendations for positioning the candidate.

PROFILE ANALYSIS:
%s

JOB ANALYSIS:
%s

CANDIDATE PROFILE:
%s`,

	// args: candidate profile, job analysis JSON, match matrix JSON, keyword percent
	OpGenerateResume: `Generate a tailored, ATS-friendly resume.

CANDIDATE PROFILE:
%s

JOB REQUIREMENTS:
%s

MATCH MATRIX AND RECOMMENDATIONS:
%s

Requirements:
1. Use the STAR method for achievements and quantify with metrics where possible
2. Incorporate roughly %d%% of the identified keywords naturally
3. Use strong action verbs and clean, scannable structure
4. Emphasize the experience most relevant to the role
5. Include these sections: Professional Summary, Core Skills, Professional Experience
   (reverse chronological), Education & Certifications, plus Projects or Publications
   if relevant`,

	// args: resume, job description, keywords
	OpEvaluateResume: `Evaluate this resume draft against the job requirements.

GENERATED RESUME:
%s

JOB DESCRIPTION:
%s

REQUIRED KEYWORDS:
%s

Score each 0-100: keyword coverage, ATS friendliness, clarity and readability,
achievement focus, and overall quality. Include specific improvement suggestions.`,

	// args: evaluation JSON, resume, job analysis JSON, iteration, max iterations
	OpDraftFeedback: `Generate actionable revision feedback for this resume draft.

EVALUATION:
%s

CURRENT RESUME:
%s

JOB REQUIREMENTS:
%s

Iteration %d of %d.

Provide strengths, weaknesses, specific line-level revisions, and the top 3-5 priority
changes with the most impact. Feedback must be implementable immediately.`,

	// args: resume, feedback JSON, job analysis JSON, human feedback
	OpReviseResume: `Revise this resume according to the feedback.

CURRENT RESUME:
%s

FEEDBACK:
%s

JOB REQUIREMENTS:
%s

REVIEWER NOTES (may be empty):
%s

Address every priority change, strengthen weak areas without losing strengths, improve
keyword integration without stuffing, and keep formatting and tone consistent.`,

	// args: resume, format
	OpFormatResume: `Format this final resume for export.

RESUME:
%s

EXPORT FORMAT: %s

Ensure consistent formatting, clean bullet points and separators, and ATS
compatibility. Return only the formatted resume.`,
}
