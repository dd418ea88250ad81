package llm

import "fmt"

const statcheckSystem = "You are an assistant that extracts statistical test values from scientific text."

const statcheckPromptTemplate = `Extract ALL statistical tests reported in the text below. For each test, extract:

- test_type: one of 'r', 't', 'f', 'chi2', 'z'.
- df1: first degree of freedom (number). If not applicable, use null.
- df2: second degree of freedom (number). If not applicable, use null.
- test_value: the test statistic value (number), exactly as printed, preserving trailing zeros.
- operator: the operator used in the reported p-value ('=', '<', '>').
- reported_p_value: the numerical reported p-value, or "ns" if reported as not significant.
- tail: 'one' or 'two'. Assume 'two' unless explicitly stated.
- epsilon: the Huynh-Feldt epsilon if one is reported for an F-test, otherwise null.

Guidelines:

- Be tolerant of minor typos or variations in reporting.
- Recognize tests even when embedded in sentences or reported in a non-standard way.
- Distinguish chi-square tests (often written as 'χ²' or 'chi2') from F-tests.
- A chi-square test can also be reported as "G-square", "G^2" or "G2"; extract those as chi2.
- "rho" is not the same as "r". Never extract "rho" as an r test.
- For p-values reported with inequality signs (e.g. p < 0.05), extract both the operator ('<') and the numerical value (0.05).
- Do not perform any calculations or inferences beyond what is explicitly stated.
- A test may be split across sentences; extract it as one test and pay close attention to the operator.
- If ANY component is missing or unclear, skip that test, especially the test_value.
- Treat commas inside numbers as thousand separators: '16,107' is 16107, and "r(31,724)" has df1 = 31724.
- For chi2 tests, do not extract the sample size.
- Only an F-test takes two degrees of freedom; all other tests take only df1.
- Never extract test types other than the five listed above.

Return ONLY a JSON array:

[
  {"test_type": "<test_type>", "df1": <df1>, "df2": <df2>, "test_value": <test_value>, "operator": "<operator>", "reported_p_value": <reported_p_value>, "tail": "<tail>", "epsilon": <epsilon>},
  ...
]

Now extract the tests from the following text:

%s

Read the text twice before answering, then return only the JSON array.`

const grimSystem = "You are an assistant that extracts reported means and their sample sizes only when the data are explicitly integer-based."

const grimPromptTemplate = `Extract only reported means and their sample sizes from the scientific text below.

Extract only if ALL of the following are true:
- The value is explicitly labeled as a mean (e.g. "M = ...", "mean = ...").
- The mean is clearly based on integer-valued response data (e.g. Likert-type scales like 1-5 or 1-7).
- A specific sample size (N) is given in the same sentence or a directly connected clause.
- The link between the mean and its sample size is clear and direct; never guess the link.
- The source of the mean is explicitly stated (e.g. "mean of 7-point scale responses").
- Only claim a Likert scale was used if the word "Likert" or "scale" appears in the context.

Deriving sample sizes from test statistics is allowed ONLY when the mean is clearly based on discrete integer data:
- For a t-test, N = df + 1, so t(23) can imply N = 24.
- For an ANOVA, N = df2 + k where k is the number of groups and df1 = k - 1. So f(1, 60) means 2 groups and a total N of 62. Never assume df2 + 1 is the sample size.

NEVER extract if ANY of the following are true:
- The sample size is not clearly linked to the mean.
- It is a median, mode, mean difference, or range.
- It refers to completion time, percentages, or continuous data such as durations or reaction times.
- It is a statistical test value: t, F, p, r, z, chi2.
- The underlying response scale is not stated as integer-based or is ambiguous.

Additional rules:
- If the total sample is split into groups, extract group-level means and sample sizes separately.
- NEVER round mean values; extract them exactly as reported, preserving all decimal places and trailing zeros (keep "6.60", not "6.6").
- Do not perform any calculations; only extract what the text states.

Return ONLY a JSON array:

[
  {"reported_mean": "<mean exactly as printed>", "sample_size": <sample_size>, "discrete_reasoning": "<why this mean is valid for a divisibility check>"},
  ...
]

Text:

%s

Only return the JSON array. Be strict, and only extract what is fully valid under the criteria above.`

func statcheckPrompt(segment string) string {
	return fmt.Sprintf(statcheckPromptTemplate, segment)
}

func grimPrompt(segment string) string {
	return fmt.Sprintf(grimPromptTemplate, segment)
}
