package quiz

import "fmt"

// Feedback is the message shown after an answer to q is graded.
func Feedback(v Verdict, q Question) string {
	switch {
	case v.Exact:
		return "Correct!"
	case v.Close:
		return "Partially Correct! The correct answer is: " + q.Expected.String()
	default:
		return "Incorrect! The correct answer is: " + q.Expected.String()
	}
}

// GradeMessage summarizes a finished quiz.
func GradeMessage(g Grade) string {
	verdict := "Better luck next time."
	if g.Passed {
		verdict = "You passed!"
	}
	return fmt.Sprintf("Final score: %g/%d (%d%%). %s", g.Score, g.Total, g.Percent, verdict)
}
