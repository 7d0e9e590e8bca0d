package consts

const (
	DefaultRefImpedance = 50.0  // Touchstone default reference impedance (ohm)
	SingularTol         = 1e-12 // relative determinant magnitude treated as singular
	HenriesPerNano      = 1e-9  // nH -> H
)
