package testrequests

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"github.com/whitestar/lifeboat/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 8
)

// Passenger profile cases.
const (
	caseThirdClassMale   = 0
	caseFirstClassFemale = 1
	caseSecondClassAdult = 2
	caseChild            = 3
	caseElderly          = 4
	caseLargeFamily      = 5
	caseSteerageBargain  = 6
	caseRandomMix        = 7
)

// Constants for attribute generation ranges.
const (
	adultAgeMin   = 18.0
	adultAgeRange = 42.0

	childAgeMax = 12.0

	elderlyAgeMin   = 60.0
	elderlyAgeRange = 20.0

	fullAgeRange = 80.0

	firstClassFareMin   = 30.0
	firstClassFareRange = 480.0

	secondClassFareMin   = 10.0
	secondClassFareRange = 60.0

	thirdClassFareMin   = 4.0
	thirdClassFareRange = 36.0

	bargainFareRange = 8.0

	familySiblingsMax = 5
	familyParentsMax  = 3
	portCount         = 3
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomInt returns a random integer in [0, n) using crypto/rand.
func randomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// generateCases creates the specified number of passenger payloads with
// unique correlation IDs.
func generateCases(ctx context.Context, config *Config, stats *Stats) ([]Case, error) {
	logger.Get().Info(ctx, "generating passenger cases", logger.Int("numRequests", config.NumRequests))

	cases := make([]Case, config.NumRequests)
	for i := range cases {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during case generation: %w", ctx.Err())
		default:
		}
		cases[i] = Case{
			CaseID:    uuid.New().String(),
			Passenger: generatePassenger(),
		}
	}

	stats.CasesGenerated = len(cases)
	logger.Get().Info(ctx, "generated cases successfully", logger.Int("count", len(cases)))

	return cases, nil
}

// generatePassenger builds one payload from a varied profile distribution,
// so the run covers every class, sex, port, and the age boundaries.
func generatePassenger() Passenger {
	switch randomInt(profileDivisor) {
	case caseThirdClassMale:
		// Third-class adult male, the most common record in the data
		return buildPassenger(3, 0, adultAgeMin+getRandomFloat()*adultAgeRange, 0, 0,
			thirdClassFareMin+getRandomFloat()*thirdClassFareRange)
	case caseFirstClassFemale:
		// First-class adult female
		return buildPassenger(1, 1, adultAgeMin+getRandomFloat()*adultAgeRange, randomInt(2), 0,
			firstClassFareMin+getRandomFloat()*firstClassFareRange)
	case caseSecondClassAdult:
		// Second-class adult of either sex
		return buildPassenger(2, randomInt(2), adultAgeMin+getRandomFloat()*adultAgeRange, randomInt(2), randomInt(2),
			secondClassFareMin+getRandomFloat()*secondClassFareRange)
	case caseChild:
		// Child travelling with parents
		return buildPassenger(2+randomInt(2), randomInt(2), getRandomFloat()*childAgeMax, randomInt(3), 1+randomInt(2),
			secondClassFareMin+getRandomFloat()*secondClassFareRange)
	case caseElderly:
		// Elderly passenger, covers the upper age band
		return buildPassenger(1+randomInt(3), randomInt(2), elderlyAgeMin+getRandomFloat()*elderlyAgeRange, randomInt(2), 0,
			secondClassFareMin+getRandomFloat()*secondClassFareRange)
	case caseLargeFamily:
		// Large third-class family group
		return buildPassenger(3, randomInt(2), adultAgeMin+getRandomFloat()*adultAgeRange,
			randomInt(familySiblingsMax+1), randomInt(familyParentsMax+1),
			thirdClassFareMin+getRandomFloat()*thirdClassFareRange)
	case caseSteerageBargain:
		// Cheapest tickets, fare may be zero
		return buildPassenger(3, randomInt(2), adultAgeMin+getRandomFloat()*adultAgeRange, 0, 0,
			getRandomFloat()*bargainFareRange)
	case caseRandomMix:
		// Anything valid, full age range including the boundaries
		return buildPassenger(1+randomInt(3), randomInt(2), getRandomFloat()*fullAgeRange, randomInt(3), randomInt(3),
			getRandomFloat()*firstClassFareRange)
	default:
		return buildPassenger(3, 0, adultAgeMin+getRandomFloat()*adultAgeRange, 0, 0,
			thirdClassFareMin+getRandomFloat()*thirdClassFareRange)
	}
}

// buildPassenger formats attribute values the way a browser form would.
func buildPassenger(class, sex int64, age float64, sibsp, parch int64, fare float64) Passenger {
	return Passenger{
		Pclass:   strconv.FormatInt(class, 10),
		Sex:      strconv.FormatInt(sex, 10),
		Age:      strconv.FormatFloat(age, 'f', 1, 64),
		Sibsp:    strconv.FormatInt(sibsp, 10),
		Parch:    strconv.FormatInt(parch, 10),
		Fare:     strconv.FormatFloat(fare, 'f', 2, 64),
		Embarked: strconv.FormatInt(randomInt(portCount), 10),
	}
}
