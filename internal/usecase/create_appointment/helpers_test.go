package create_appointment

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

func domainTime(s string) types.TimeString {
	return types.TimeString(s)
}
