package matching

import "strings"

// Star power tiers. A manually curated flat bonus rewarding name
// recognition over statistical fit:
//
//	tier 1 (+150): GOAT status / mega stars
//	tier 2 (+100): current champions and hall of famers
//	tier 3 (+60):  former champions and big names
//	tier 4 (+30):  popular fighters and contenders
//
// Unlisted names score 0.
var starPower = map[string]float64{
	// tier 1
	"Jon Jones":           150,
	"Khabib Nurmagomedov": 150,
	"Georges St-Pierre":   150,
	"Anderson Silva":      150,
	"Conor McGregor":      150,
	"Amanda Nunes":        150,
	"Demetrious Johnson":  150,

	// tier 2: current champions
	"Islam Makhachev":      100,
	"Alex Pereira":         100,
	"Dricus Du Plessis":    100,
	"Belal Muhammad":       100,
	"Ilia Topuria":         100,
	"Merab Dvalishvili":    100,
	"Alexandre Pantoja":    100,
	"Zhang Weili":          100,
	"Valentina Shevchenko": 100,
	"Alexa Grasso":         100,
	// tier 2: hall of famers
	"Ronda Rousey":    100,
	"Daniel Cormier":  100,
	"Stipe Miocic":    100,
	"Jose Aldo":       100,
	"Chuck Liddell":   100,
	"Randy Couture":   100,
	"Matt Hughes":     100,
	"Tito Ortiz":      100,
	"Royce Gracie":    100,
	"BJ Penn":         100,
	"Forrest Griffin": 100,
	"Michael Bisping": 100,
	"Urijah Faber":    100,
	"Bas Rutten":      100,
	"Ken Shamrock":    100,
	"Don Frye":        100,
	"Mark Coleman":    100,
	"Dan Severn":      100,

	// tier 3
	"Israel Adesanya":        60,
	"Max Holloway":           60,
	"Dustin Poirier":         60,
	"Charles Oliveira":       60,
	"Kamaru Usman":           60,
	"Francis Ngannou":        60,
	"Sean O'Malley":          60,
	"Leon Edwards":           60,
	"Alexander Volkanovski":  60,
	"Henry Cejudo":           60,
	"TJ Dillashaw":           60,
	"Dominick Cruz":          60,
	"Robert Whittaker":       60,
	"Chris Weidman":          60,
	"Luke Rockhold":          60,
	"Lyoto Machida":          60,
	"Mauricio Rua":           60,
	"Quinton Jackson":        60,
	"Vitor Belfort":          60,
	"Wanderlei Silva":        60,
	"Mirko Cro Cop":          60,
	"Cain Velasquez":         60,
	"Junior Dos Santos":      60,
	"Brock Lesnar":           60,
	"Tyron Woodley":          60,
	"Robbie Lawler":          60,
	"Anthony Pettis":         60,
	"Eddie Alvarez":          60,
	"Rafael Dos Anjos":       60,
	"Frankie Edgar":          60,
	"Rose Namajunas":         60,
	"Joanna Jedrzejczyk":     60,
	"Carla Esparza":          60,
	"Miesha Tate":            60,
	"Holly Holm":             60,
	"Cris Cyborg":            60,
	"Glover Teixeira":        60,
	"Jan Blachowicz":         60,
	"Jiri Prochazka":         60,
	"Brandon Moreno":         60,
	"Deiveson Figueiredo":    60,
	"Aljamain Sterling":      60,
	"Petr Yan":               60,

	// tier 4
	"Nate Diaz":         30,
	"Nick Diaz":         30,
	"Jorge Masvidal":    30,
	"Colby Covington":   30,
	"Justin Gaethje":    30,
	"Tony Ferguson":     30,
	"Michael Chandler":  30,
	"Beneil Dariush":    30,
	"Paddy Pimblett":    30,
	"Sean Strickland":   30,
	"Paulo Costa":       30,
	"Marvin Vettori":    30,
	"Yoel Romero":       30,
	"Derek Brunson":     30,
	"Gilbert Burns":     30,
	"Vicente Luque":     30,
	"Stephen Thompson":  30,
	"Demian Maia":       30,
	"Carlos Condit":     30,
	"Matt Brown":        30,
	"Donald Cerrone":    30,
	"Jim Miller":        30,
	"Clay Guida":        30,
	"Cory Sandhagen":    30,
	"Marlon Vera":       30,
	"Song Yadong":       30,
	"Ciryl Gane":        30,
	"Tom Aspinall":      30,
	"Curtis Blaydes":    30,
	"Derrick Lewis":     30,
	"Tai Tuivasa":       30,
	"Jamahal Hill":      30,
	"Magomed Ankalaev":  30,
	"Jessica Andrade":   30,
	"Yan Xiaonan":       30,
	"Tatiana Suarez":    30,
	"Kayla Harrison":    30,
	"Maycee Barber":     30,
	"Katlyn Chookagian": 30,
	"Bo Nickal":         30,
	"Shavkat Rakhmonov": 30,
	"Arman Tsarukyan":   30,
	"Movsar Evloev":     30,
	"Diego Lopes":       30,
	"Dan Hooker":        30,
	"Brad Riddell":      30,
	"Renato Moicano":    30,
	"Brian Ortega":      30,
	"Yair Rodriguez":    30,
	"Arnold Allen":      30,
	"Calvin Kattar":     30,
}

// starPowerFolded is the same table keyed by case-folded name, built once
// so lookups stay O(1) for names the API returns in a different casing.
var starPowerFolded = func() map[string]float64 {
	m := make(map[string]float64, len(starPower))
	for name, bonus := range starPower {
		m[strings.ToLower(name)] = bonus
	}
	return m
}()

// StarPower returns the flat recognizability bonus for a fighter name,
// matching exactly first and case-insensitively second; 0 when unlisted.
func StarPower(name string) float64 {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0
	}
	if bonus, ok := starPower[trimmed]; ok {
		return bonus
	}
	return starPowerFolded[strings.ToLower(trimmed)]
}
