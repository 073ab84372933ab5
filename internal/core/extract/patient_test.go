package extract

import (
	"testing"

	"github.com/ymatsuda/docfiler/internal/core/textnorm"
)

func TestPatientEmptyText(t *testing.T) {
	if got := Patient(""); got != "" {
		t.Fatalf("Patient(\"\") = %q, want empty", got)
	}
}

func TestPatientHonorificSuffix(t *testing.T) {
	text := textnorm.Normalize("いつもお世話になっております。\n山田 太郎様の施術についてご報告します。")
	if got := Patient(text); got != "山田太郎" {
		t.Fatalf("Patient() = %q, want 山田太郎", got)
	}
}

func TestPatientHonorificWithoutSpaceBeforeMarker(t *testing.T) {
	text := "佐藤 はな様"
	if got := Patient(text); got != "佐藤はな" {
		t.Fatalf("Patient() = %q, want 佐藤はな", got)
	}
}

func TestPatientLabelWindow(t *testing.T) {
	text := "患者氏名: 山田 太郎 生年月日: 1990年1月1日"
	if got := Patient(text); got != "山田太郎" {
		t.Fatalf("Patient() = %q, want 山田太郎", got)
	}
}

func TestPatientWindowStopsAtBoundaryLabel(t *testing.T) {
	// The address must never be absorbed into the name window.
	text := "氏名 住所 東京都新宿区1-2-3"
	if got := Patient(text); got != "" {
		t.Fatalf("Patient() = %q, want empty", got)
	}
}

func TestPatientLabelOnNextLine(t *testing.T) {
	text := "患者氏名:\n山田 太郎\n生年月日: 1990年1月1日"
	if got := Patient(text); got != "山田太郎" {
		t.Fatalf("Patient() = %q, want 山田太郎", got)
	}
}

func TestPatientGenericProximityWindow(t *testing.T) {
	text := "患者 鈴木 花子 の経過について"
	if got := Patient(text); got != "鈴木花子" {
		t.Fatalf("Patient() = %q, want 鈴木花子", got)
	}
}

func TestPatientRosterHeadingNotAName(t *testing.T) {
	// A roster heading is a phrase, not a name label; no name may be
	// fabricated from the column text that follows it.
	text := "患者リスト 山田 太郎 佐藤 花子"
	if got := Patient(text); got != "" {
		t.Fatalf("Patient() = %q, want empty", got)
	}
}

func TestPatientPhrasePrefixSkipped(t *testing.T) {
	for _, text := range []string{
		"患者一覧 2026年8月分",
		"患者情報 管理票",
		"患者数 42名",
	} {
		if got := Patient(text); got != "" {
			t.Fatalf("Patient(%q) = %q, want empty", text, got)
		}
	}
}

func TestPatientSplitLabelSalvage(t *testing.T) {
	// 氏名 split across a span; the name survives at the tail of the span.
	text := "氏 ------- 山田 太郎名"
	if got := Patient(text); got != "山田太郎" {
		t.Fatalf("Patient() = %q, want 山田太郎", got)
	}
}

func TestPatientSplitLabelNameAfterSpan(t *testing.T) {
	text := "氏 ××× 名 山田 太郎"
	if got := Patient(text); got != "山田太郎" {
		t.Fatalf("Patient() = %q, want 山田太郎", got)
	}
}

func TestPatientRejectsInstitutionMatch(t *testing.T) {
	text := "氏名 さくら治療院 御中"
	if got := Patient(text); got != "" {
		t.Fatalf("Patient() = %q, want empty", got)
	}
}
