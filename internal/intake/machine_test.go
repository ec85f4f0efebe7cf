package intake

import (
	"encoding/json"
	"errors"
	"testing"
)

func completeMachineThroughStep2(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine()
	m.Draft.Identity = validIdentity()
	m.Draft.Address = validAddress()
	if err := m.Advance(); err != nil {
		t.Fatalf("advance past identity: %v", err)
	}
	m.Draft.Conditions = Conditions{
		FourPs:    "no",
		Housing:   []string{"Totally Damaged"},
		Health:    []string{NoneTag},
		Casualty:  []string{NoneTag},
		Ownership: []string{"Rented"},
		Codes:     []string{"Senior Citizen"},
	}
	if err := m.Advance(); err != nil {
		t.Fatalf("advance past conditions: %v", err)
	}
	return m
}

func TestMachineBlocksInvalidStep1(t *testing.T) {
	m := NewMachine()
	m.Draft.Identity = validIdentity()
	m.Draft.Identity.Mobile = "123"
	m.Draft.Address = validAddress()

	if err := m.Advance(); err == nil {
		t.Fatalf("invalid mobile must block advancement")
	}
	if m.Step != StepIdentity {
		t.Fatalf("failed advance must not move the step, at %s", m.Step)
	}
	if _, ok := m.Errors["mobile"]; !ok {
		t.Fatalf("errors must be field-keyed: %v", m.Errors)
	}
}

func TestMachineHappyPathWithFamily(t *testing.T) {
	m := completeMachineThroughStep2(t)
	if m.Step != StepFamily {
		t.Fatalf("expected StepFamily, at %s", m.Step)
	}

	m.Draft.Family = []Row{
		{Name: "Jose Cruz", Relation: "Son", Age: 15, Gender: "Male", CivilStatus: "Single"},
	}
	if err := m.Submit(false); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !m.Ready() {
		t.Fatalf("machine must be ready after submit, at %s", m.Step)
	}
}

func TestMachineLivingAloneConfirmation(t *testing.T) {
	m := completeMachineThroughStep2(t)
	m.Draft.Family = []Row{{}, {}}

	err := m.Submit(false)
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("empty family must require confirmation, got %v", err)
	}
	if m.Step != StepAwaitingConfirm {
		t.Fatalf("expected StepAwaitingConfirm, at %s", m.Step)
	}

	if err := m.Submit(true); err != nil {
		t.Fatalf("confirmed submit: %v", err)
	}
	if !m.Ready() {
		t.Fatalf("machine must be ready after confirmation, at %s", m.Step)
	}
}

func TestMachineRetreatPreservesDraft(t *testing.T) {
	m := completeMachineThroughStep2(t)
	m.Draft.Family = []Row{{Name: "Jose Cruz"}}

	m.Retreat()
	if m.Step != StepConditions {
		t.Fatalf("expected StepConditions after retreat, at %s", m.Step)
	}
	m.Retreat()
	if m.Step != StepIdentity {
		t.Fatalf("expected StepIdentity after second retreat, at %s", m.Step)
	}

	if m.Draft.Identity.FirstName != "Maria" {
		t.Fatalf("retreat must not discard identity data")
	}
	if len(m.Draft.Conditions.Housing) == 0 {
		t.Fatalf("retreat must not discard condition data")
	}
	if len(m.Draft.Family) == 0 {
		t.Fatalf("retreat must not discard family data")
	}
}

func TestMachineSubmitRejectsIncompleteRow(t *testing.T) {
	m := completeMachineThroughStep2(t)
	m.Draft.Family = []Row{{Name: "Jose Cruz"}}

	if err := m.Submit(false); err == nil {
		t.Fatalf("partial family row must block submission")
	}
	if m.Step != StepFamily {
		t.Fatalf("failed submit must stay on StepFamily, at %s", m.Step)
	}
}

func TestMachineSubmitBeforeFamilyStep(t *testing.T) {
	m := NewMachine()
	if err := m.Submit(false); !errors.Is(err, ErrNotReady) {
		t.Fatalf("submit from step 1 must fail with ErrNotReady, got %v", err)
	}
}

func TestMachineSurvivesJSONRoundTrip(t *testing.T) {
	m := completeMachineThroughStep2(t)
	m.Draft.Family = []Row{{Name: "Jose Cruz", Relation: "Son", Age: 15, Gender: "Male", CivilStatus: "Single"}}

	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal machine: %v", err)
	}
	var restored Machine
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal machine: %v", err)
	}
	if restored.Step != StepFamily {
		t.Fatalf("step lost in round trip: %s", restored.Step)
	}
	if err := restored.Submit(false); err != nil {
		t.Fatalf("restored machine must submit cleanly: %v", err)
	}
}
