package registration

import "github.com/user-registration/app/internal/models"

// SelfTestSuccess stands for "no validation errors" in self-test results.
const SelfTestSuccess = "Success"

// SelfTestResult is one row of the self-test table.
type SelfTestResult struct {
	Index    int
	Expected string
	Actual   string
	Passed   bool
}

type fixture struct {
	sub      models.Submission
	expected string
}

var fixtures = []fixture{
	{models.Submission{Name: "", Email: "test1@example.com", Password: "Password@1", ConfirmPassword: "Password@1"}, MsgNameRequired},
	{models.Submission{Name: "Alice", Email: "invalidemail", Password: "Password@1", ConfirmPassword: "Password@1"}, MsgEmailInvalid},
	{models.Submission{Name: "Bob", Email: "bob@example.com", Password: "short", ConfirmPassword: "short"}, MsgPasswordTooShort},
	{models.Submission{Name: "Charlie", Email: "charlie@example.com", Password: "Password1", ConfirmPassword: "Password1"}, MsgPasswordNoSpecial},
	{models.Submission{Name: "David", Email: "david@example.com", Password: "Password@1", ConfirmPassword: "Password@2"}, MsgPasswordsMismatch},
	{models.Submission{Name: "Eve", Email: "eve@example.com", Password: "Password@1", ConfirmPassword: "Password@1"}, ""},
}

// RunSelfTests validates the built-in fixtures, reporting every failing
// message of each one. It never touches the store.
func RunSelfTests() []SelfTestResult {
	results := make([]SelfTestResult, 0, len(fixtures))
	for i, f := range fixtures {
		expected := f.expected
		if expected == "" {
			expected = SelfTestSuccess
		}
		actual := Validate(f.sub).Join()
		if actual == "" {
			actual = SelfTestSuccess
		}
		results = append(results, SelfTestResult{
			Index:    i + 1,
			Expected: expected,
			Actual:   actual,
			Passed:   expected == actual,
		})
	}
	return results
}
