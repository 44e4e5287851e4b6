// Package kabutech provides an embeddable mushroom-cultivation advisor:
// it classifies a grow-bag photo with a local ONNX model and maps the
// result, together with optional environment readings, to a severity
// rating, alerts, and recommended actions.
//
// Quick start:
//
//	adv, err := kabutech.New(kabutech.WithModelPath("models/kabutech_cls.onnx"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer adv.Close()
//
//	report, _ := adv.Analyze("shots/bag3.jpg", kabutech.Environment{"temp_c": 24})
//	fmt.Println(report.Severity, report.Actions)
//
// Callers that run their own classifier can skip the model entirely and use
// NewEvaluator, which applies only the recommendation rules. Both types are
// safe for concurrent use.
package kabutech
