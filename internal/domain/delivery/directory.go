package delivery

import "github.com/ancare/ancare/internal/domain/anc"

// RegistryDirectory resolves file numbers through the live patient
// registry, freezing the full patient record into each snapshot.
func RegistryDirectory(patients *anc.Service) PatientDirectory {
	return DirectoryFunc(func(fileNumber string) (PatientSnapshot, bool) {
		p, err := patients.FindByFileNumber(fileNumber)
		if err != nil {
			return PatientSnapshot{}, false
		}
		return SnapshotOf(p), true
	})
}
